package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientTTL is how long an idle client's limiter is kept.
const clientTTL = 10 * time.Minute

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// KeyFunc identifies the client. Defaults to the client IP.
	KeyFunc func(c *gin.Context) string
}

// DefaultRateLimitConfig returns production-ready rate limit configuration.
// Rendering is expensive, so clients get a small burst and a slow refill.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	}
}

// RateLimit creates a per-client rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastSweep = time.Now()
	)

	return func(c *gin.Context) {
		key := keyFunc(c)
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > clientTTL {
			for k, cl := range clients {
				if now.Sub(cl.lastSeen) > clientTTL {
					delete(clients, k)
				}
			}
			lastSweep = now
		}
		cl, exists := clients[key]
		if !exists {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
			clients[key] = cl
		}
		cl.lastSeen = now
		limiter := cl.limiter
		mu.Unlock()

		if !limiter.AllowN(now, 1) {
			abortLimited(c, limiter, now)
			return
		}

		c.Next()
	}
}

// GlobalRateLimit creates a global rate limiting middleware.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		now := time.Now()
		if !limiter.AllowN(now, 1) {
			abortLimited(c, limiter, now)
			return
		}
		c.Next()
	}
}

func abortLimited(c *gin.Context, limiter *rate.Limiter, now time.Time) {
	r := limiter.ReserveN(now, 1)
	if r.OK() {
		wait := r.DelayFrom(now)
		r.CancelAt(now)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "rate limit exceeded",
	})
}
