package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cppla/linkbook/config"
	"github.com/cppla/linkbook/utils"
)

const (
	limiterIdleTTL = 5 * time.Minute
	// idle limiters are swept at most this often
	limiterSweepInterval = time.Minute
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// ipLimiters hands out one token bucket per client IP and forgets idle ones.
type ipLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rateLimiter
	swept    time.Time
	now      func() time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	perMinute = maxInt(perMinute, 1)
	return &ipLimiters{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    maxInt(perMinute/2, 1),
		limiters: map[string]*rateLimiter{},
		now:      time.Now,
	}
}

func (l *ipLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) >= limiterSweepInterval {
		for k, rl := range l.limiters {
			if now.After(rl.expires) {
				delete(l.limiters, k)
			}
		}
		l.swept = now
	}

	rl, ok := l.limiters[key]
	if !ok {
		rl = &rateLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = rl
	}
	rl.expires = now.Add(limiterIdleTTL)
	return rl.limiter.Allow()
}

// RateLimitMiddleware applies a simple IP based rate limiter using a token bucket.
func RateLimitMiddleware() gin.HandlerFunc {
	limiters := newIPLimiters(config.Get().RateLimitPerMinute)

	return func(ctx *gin.Context) {
		if !limiters.allow(ctx.ClientIP()) {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
