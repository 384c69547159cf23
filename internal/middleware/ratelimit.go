package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/infra/ratelimit"
)

// RateLimit limits requests per client IP. Limiter errors let the request
// through. A nil limiter disables the check.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()

		ok, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			Logger(c, log).Warn("rate limiter error", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			Logger(c, log).Warn("rate limit exceeded", zap.String("ip", ip))
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Try again later.")
			return
		}

		c.Next()
	}
}
