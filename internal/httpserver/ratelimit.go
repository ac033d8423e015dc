package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"recall-assistant/pkg/response"
)

const (
	DefaultMaxTrackedClients = 1000
	limiterTTL               = 5 * time.Minute
)

// RateLimitConfig bounds chat requests per client.
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	// MaxTracked caps the number of clients holding a limiter; the least recent is evicted.
	MaxTracked int
}

// rateLimiter keeps one token bucket per client, forgotten after limiterTTL of silence.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(cfg RateLimitConfig) (*rateLimiter, error) {
	if cfg.RequestsPerMin <= 0 {
		return nil, errors.New("rate limit requests per minute must be positive")
	}
	size := cfg.MaxTracked
	if size <= 0 {
		size = DefaultMaxTrackedClients
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, limiterTTL),
		rate:     rate.Limit(float64(cfg.RequestsPerMin) / 60.0),
		burst:    max(1, cfg.RequestsPerMin/10),
	}, nil
}

func (rl *rateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

// limit rejects requests over the client's budget with 429.
func (srv *HTTPServer) limit(rl *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.allow(key) {
			srv.l.Warnf(c.Request.Context(), "internal.httpserver.limit: rate limit exceeded for %s", key)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
