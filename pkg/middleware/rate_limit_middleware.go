package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"mindwell-backend/utilities"
)

// SubmissionRateLimiter throttles assessment submissions per user with a
// token bucket. Unauthenticated requests share one bucket keyed by zero.
func SubmissionRateLimiter(perMinute, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 5
	}

	var (
		mu       sync.Mutex
		limiters = make(map[uint]*rate.Limiter)
	)
	limiterFor := func(userID uint) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[userID]
		if !ok {
			l = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
			limiters[userID] = l
		}
		return l
	}

	return func(c *gin.Context) {
		userID := utilities.CurrentUserID(c)
		if !limiterFor(userID).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "too many submissions, slow down", "code": "rate_limited"})
			c.Abort()
			return
		}
		c.Next()
	}
}
