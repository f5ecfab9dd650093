package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/ratelimit"
)

// RateLimit throttles requests per client IP. Rejected requests never reach
// the next handler. A limiter error lets the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		d, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			logging.NewLogger(ctx).LogWarnf("rate_limit", "limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			wait := d.RetryAfter(time.Now())
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}
