package gateway

import (
	"math"
	"sync"
	"time"
)

// RateLimiter is a process-local sliding window keyed by (user, action).
// Windows live only in memory: entries are trimmed lazily on the next check
// for the same key, which bounds memory by active-key count. The limiter is
// deliberately not distributed; with N instances the effective per-user
// throughput can reach N times the nominal limit (abuse prevention, not a
// correctness guarantee).
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

// RateResult is the outcome of a single rate check.
type RateResult struct {
	Allowed    bool
	RetryAfter int // whole seconds, rounded up; set only when denied
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Check trims the key's window, then either records the request (allowed) or
// computes how long the caller must wait for the oldest entry to expire.
func (rl *RateLimiter) Check(userID string, action Action) RateResult {
	policy := PolicyFor(action)
	key := userID + ":" + string(action)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-policy.Window)

	window := rl.windows[key]
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= policy.MaxRequests {
		rl.windows[key] = kept
		wait := kept[0].Add(policy.Window).Sub(now)
		retry := int(math.Ceil(wait.Seconds()))
		if retry < 0 {
			retry = 0
		}
		return RateResult{Allowed: false, RetryAfter: retry}
	}

	rl.windows[key] = append(kept, now)
	return RateResult{Allowed: true}
}
