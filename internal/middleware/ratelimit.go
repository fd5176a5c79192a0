package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"foodgram/internal/pkg/response"
)

// RateLimit allows perMinute requests per client IP with a burst of the same
// size. Limiters idle for more than ten minutes are dropped on the next call.
func RateLimit(perMinute int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
		every   = rate.Every(time.Minute / time.Duration(perMinute))
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		for k, e := range clients {
			if now.Sub(e.lastSeen) > 10*time.Minute {
				delete(clients, k)
			}
		}
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(every, perMinute)}
			clients[ip] = e
		}
		e.lastSeen = now
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
