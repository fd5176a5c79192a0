package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram/internal/logging"
	"foodgram/internal/pkg/response"
)

const requestIDKey = "request_id"

// RequestID propagates X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger writes one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logging.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(c.Request.Context()).Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("user_id", CurrentUserID(c)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// ErrorLogger logs errors attached to the context and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logging.Ctx(c.Request.Context()).Error().
					Err(err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logging.Ctx(c.Request.Context()).Error().
					Err(err.Err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Int("status", c.Writer.Status()).
					Int64("user_id", CurrentUserID(c)).
					Msg("request error")
			}
		}()

		c.Next()
	}
}
