package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"balancegame/cache"

	"github.com/gin-gonic/gin"
)

// RateLimit limits requests per client IP using a fixed Redis window.
// Intended for the unauthenticated auth endpoints (login, signup), where
// per-user limiting is not possible yet. Skipped when Redis is down.
func RateLimit(name string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.IsRedisAvailable() {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", name, c.ClientIP())
		allowed, remaining, err := cache.CheckRateLimit(key, maxRequests, window)
		if err != nil {
			// A broken limiter should not take the endpoint down with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Window", window.String())

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
