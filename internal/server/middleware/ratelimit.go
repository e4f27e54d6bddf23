package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits request rates per authenticated user.
// A rate of 0 disables limiting. Limiters are cached per user with a
// TTL so deactivated users do not pin memory forever.
func RateLimitMiddleware(perSecond float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limiters := sync.Map{} // user ID -> *cachedLimiter

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w, "not authenticated")
				return
			}

			if perSecond > 0 {
				limiter := getOrCreateLimiter(&limiters, user.ID, perSecond, burst, 5*time.Minute)
				if !limiter.Allow() {
					w.Header().Set("Retry-After", "1")
					http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type cachedLimiter struct {
	limiter   *rate.Limiter
	expiresAt time.Time
}

func getOrCreateLimiter(limiters *sync.Map, userID uuid.UUID, perSecond float64, burst int, ttl time.Duration) *rate.Limiter {
	if cached, ok := limiters.Load(userID); ok {
		entry := cached.(*cachedLimiter)
		if time.Now().Before(entry.expiresAt) {
			return entry.limiter
		}
		// expired, need to create new
	}

	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	limiters.Store(userID, &cachedLimiter{
		limiter:   limiter,
		expiresAt: time.Now().Add(ttl),
	})
	return limiter
}
