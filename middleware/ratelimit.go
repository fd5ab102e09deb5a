// middleware/ratelimit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// UserRateLimiter keeps one token bucket per user id. It is owned by the boundary
// and injected into routes — the services underneath never see it.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	rate     rate.Limit
	burst    int
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewUserRateLimiter allows `perMinute` requests per user with the given burst.
func NewUserRateLimiter(perMinute int, burst int) *UserRateLimiter {
	l := &UserRateLimiter{
		limiters: make(map[string]*userLimiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
	go l.cleanup()
	return l
}

func (l *UserRateLimiter) allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ul, ok := l.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[userID] = ul
	}
	ul.lastSeen = time.Now()
	return ul.limiter.Allow()
}

// cleanup drops buckets idle for more than an hour so the map stays bounded.
func (l *UserRateLimiter) cleanup() {
	for range time.Tick(10 * time.Minute) {
		l.mu.Lock()
		for id, ul := range l.limiters {
			if time.Since(ul.lastSeen) > time.Hour {
				delete(l.limiters, id)
			}
		}
		l.mu.Unlock()
	}
}

// Handler rejects requests over the per-user budget with 429. Requires
// UserContextMiddleware to have run first.
func (l *UserRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Next()
		}
		if !l.allow(userID) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded — slow down",
			})
		}
		return c.Next()
	}
}
