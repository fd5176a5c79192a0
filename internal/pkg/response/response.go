package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes err using its apperr category. Uncategorized errors are
// attached to the context for ErrorLogger and reported as a bare 500.
func FromError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	code := strings.ToUpper(string(e.Kind))
	status := apperr.HTTPStatus(e.Kind)
	if e.Field != "" {
		ErrorWithDetails(c, status, code, e.Message, gin.H{"field": e.Field})
		return
	}
	Error(c, status, code, e.Message)
}

// Abort is FromError followed by c.Abort, for middleware.
func Abort(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}
