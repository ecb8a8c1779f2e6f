package middleware

import (
	"net/http"
	"sync"

	"sparkwash-api/internal/handler/httperr"
	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("checkout rate limit exceeded")

// RateLimiter throttles checkout starts per caller. Every rejected request is
// one gateway Initialize call saved, so this sits in front of the payment
// handler only.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewCheckoutRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.CheckoutPerSecond),
		burst:    cfg.CheckoutBurst,
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = userID.String()
		}

		if !r.limiterFor(key).Allow() {
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				"Too many checkout attempts, slow down", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.limiters[key]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[key] = l
	}
	return l
}
