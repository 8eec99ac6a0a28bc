package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	CleanupInterval = 5 * time.Minute
	LimiterTTL      = 10 * time.Minute
)

// RateLimiter keeps one token bucket per user
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	rateLimit         float64 // tokens per second
	burstSize         int
	stopCh            chan struct{}
	stopOnce          sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiterWithConfig starts a limiter and its cleanup loop; call Stop when done
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		rateLimit:         float64(requestsPerMinute) / 60.0,
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow consumes one token from the user's bucket
func (r *RateLimiter) Allow(userID string) bool {
	return r.entry(userID).limiter.Allow()
}

func (r *RateLimiter) entry(userID string) *limiterEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.limiters[userID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize)}
		r.limiters[userID] = e
	}
	e.lastSeen = time.Now()
	return e
}

// State approximates the remaining burst and when the bucket is full again
func (r *RateLimiter) State(userID string) (remaining int, reset time.Time) {
	r.mu.Lock()
	e, ok := r.limiters[userID]
	r.mu.Unlock()

	if !ok {
		return r.burstSize, time.Now()
	}

	remaining = int(e.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	refill := time.Duration(float64(r.burstSize-remaining) / r.rateLimit * float64(time.Second))
	return remaining, time.Now().Add(refill)
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, e := range r.limiters {
		if now.Sub(e.lastSeen) > LimiterTTL {
			delete(r.limiters, userID)
			log.Debug().Str("user_id", userID).Msg("Cleaned up idle rate limiter")
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RateLimitMiddleware limits authenticated users. It must run after
// Authenticate; requests without a session pass through.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := GetSession(c)
			if !ok {
				return next(c)
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMinute))

			if !rl.Allow(session.UserID) {
				_, reset := rl.State(session.UserID)
				retryAfter := int(time.Until(reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				header.Set("X-RateLimit-Remaining", "0")
				header.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
				header.Set("Retry-After", strconv.Itoa(retryAfter))

				log.Warn().
					Str("user_id", session.UserID).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return rateLimitError(c, fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter))
			}

			remaining, reset := rl.State(session.UserID)
			header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			return next(c)
		}
	}
}
