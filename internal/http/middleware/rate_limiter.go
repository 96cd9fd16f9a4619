package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/response"
)

// RateLimiter throttles requests per client IP in fixed windows kept in Redis.
type RateLimiter struct {
	counter domain.RateCounter
}

// NewRateLimiter creates a limiter over counter.
func NewRateLimiter(counter domain.RateCounter) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// Limit admits at most limit requests per window for each client IP under
// name. When the counter is unavailable requests are let through.
func (rl *RateLimiter) Limit(name string, limit int, window time.Duration, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		count, left, err := rl.counter.Hit(c.Request.Context(), name+":"+ip, window)
		if err != nil {
			log.Warn().Err(err).Str("limiter", name).Str("client_ip", ip).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(left.Seconds()))))
			response.Message(c, http.StatusTooManyRequests, message)
			return
		}
		c.Next()
	}
}
