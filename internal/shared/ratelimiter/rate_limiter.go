// Package ratelimiter provides a per-client sliding-window request limiter.
package ratelimiter

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"codesage_backend/internal/api"
	"codesage_backend/internal/apperror"
)

// ErrRateLimitExceeded is returned by Check when a client is over the limit.
var ErrRateLimitExceeded = apperror.New(apperror.ErrRateLimited,
	"Rate limit exceeded. Please try again later.")

// RateLimiter counts requests per client identity inside a trailing window
// and rejects a client once it reaches the configured limit. All state is
// guarded by a mutex; the limiter is safe for concurrent handlers.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	requests  map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time // swapped in tests
}

// NewRateLimiter creates a limiter allowing limit requests per window
// for each client identity.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		requests:  make(map[string][]time.Time),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Check records a request from identity unless the trailing window already
// holds limit requests, in which case it returns ErrRateLimitExceeded and
// records nothing.
func (rl *RateLimiter) Check(identity string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	// Drop timestamps that fell out of the window.
	kept := rl.requests[identity][:0]
	for _, t := range rl.requests[identity] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= rl.limit {
		rl.requests[identity] = kept
		return ErrRateLimitExceeded
	}

	rl.requests[identity] = append(kept, now)
	rl.sweepLocked(now)
	return nil
}

// sweepLocked evicts clients whose entire history has aged out, so the
// table stays bounded by active clients. Runs at most once per three
// windows. Caller must hold rl.mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < 3*rl.window {
		return
	}
	rl.lastSweep = now
	cutoff := now.Add(-rl.window)
	for identity, times := range rl.requests {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.requests, identity)
		}
	}
}

// Middleware applies the limiter to every request, keyed by source address.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rl.Check(c.ClientIP()); err != nil {
			api.AbortError(c, err)
			return
		}
		c.Next()
	}
}
