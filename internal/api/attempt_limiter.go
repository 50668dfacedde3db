package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionCreateLimit  = 30
	sessionCreateWindow = time.Hour
	limiterSweepEvery   = 256
)

// sessionLimiter keeps a sliding window of session creations per client.
type sessionLimiter struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	sweepEvery int
	calls      int
	created    map[string][]time.Time
}

func newSessionLimiter(limit int, window time.Duration) *sessionLimiter {
	return &sessionLimiter{
		limit:      limit,
		window:     window,
		sweepEvery: limiterSweepEvery,
		created:    make(map[string][]time.Time),
	}
}

// allow records a creation for key at now unless the window is already full.
func (limiter *sessionLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.calls++
	if limiter.calls >= limiter.sweepEvery {
		limiter.calls = 0
		limiter.sweepLocked(now)
	}

	recent := limiter.pruneLocked(key, now)
	if len(recent) >= limiter.limit {
		return false
	}
	limiter.created[key] = append(recent, now)
	return true
}

// sweepLocked drops clients whose whole history fell out of the window.
func (limiter *sessionLimiter) sweepLocked(now time.Time) {
	for key := range limiter.created {
		limiter.pruneLocked(key, now)
	}
}

func (limiter *sessionLimiter) pruneLocked(key string, now time.Time) []time.Time {
	values := limiter.created[key]
	if len(values) == 0 {
		return nil
	}

	threshold := now.Add(-limiter.window)
	kept := values[:0]
	for _, value := range values {
		if value.After(threshold) {
			kept = append(kept, value)
		}
	}

	if len(kept) == 0 {
		delete(limiter.created, key)
		return nil
	}
	limiter.created[key] = kept
	return kept
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
