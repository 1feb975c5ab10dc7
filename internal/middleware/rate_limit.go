package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

// RateLimitConfig configures a per-client token bucket
type RateLimitConfig struct {
	// Requests allowed per Interval
	Requests int
	Interval time.Duration
	// Burst is the bucket size; defaults to Requests
	Burst int
	// IdleTTL drops buckets of clients not seen for this long
	IdleTTL time.Duration
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	mu      sync.Mutex
	config  RateLimitConfig
	limit   rate.Limit
	buckets map[string]*clientBucket
	swept   time.Time
}

// NewRateLimiter creates a limiter from config
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.Requests <= 0 {
		config.Requests = 60
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	if config.Burst <= 0 {
		config.Burst = config.Requests
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		config:  config,
		limit:   rate.Every(config.Interval / time.Duration(config.Requests)),
		buckets: make(map[string]*clientBucket),
		swept:   time.Now(),
	}
}

// Allow reports whether the client may make a request now
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.swept) > l.config.IdleTTL {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.config.IdleTTL {
				delete(l.buckets, key)
			}
		}
		l.swept = now
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.config.Burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Handler returns gin middleware rejecting clients over their limit
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			HandleAPIError(c, apperrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
