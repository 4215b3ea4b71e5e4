package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/pkg/response"
)

// RateLimiter caps requests per client IP with a fixed window counter.
// A cache miss on an analytics request pulls thousands of documents from
// the store, so the analytics routes are guarded by this.
type RateLimiter struct {
	mu      sync.Mutex
	counts  map[string]int
	start   time.Time
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts: make(map[string]int),
		start:  time.Now(),
		limit:  limit,
		window: window,
	}
}

// Allow reports whether a request from ip fits in the current window.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.start) >= rl.window {
		rl.counts = make(map[string]int)
		rl.start = now
	}

	if rl.counts[ip] >= rl.limit {
		return false
	}
	rl.counts[ip]++
	return true
}

// RateLimit middleware limits requests per IP
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.Error(c, 429, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
