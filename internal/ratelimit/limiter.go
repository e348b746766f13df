package ratelimit

import (
	"sync"
	"time"
)

// Window is the sliding interval the per-minute limiter counts over.
const Window = time.Minute

// Limiter implements a sliding window rate limiter for tool calls.
// Thread-safe: the stdio loop and the REST surface share one instance.
type Limiter struct {
	mu         sync.Mutex
	timestamps []time.Time
	maxCalls   int
	window     time.Duration
}

// New creates a rate limiter allowing maxCalls within the given window.
// A maxCalls of zero or less disables limiting.
func New(maxCalls int, window time.Duration) *Limiter {
	return &Limiter{
		timestamps: make([]time.Time, 0, max(maxCalls, 0)),
		maxCalls:   maxCalls,
		window:     window,
	}
}

// NewPerMinute creates a rate limiter allowing maxCalls per sliding minute.
func NewPerMinute(maxCalls int) *Limiter {
	return New(maxCalls, Window)
}

// Allow checks if a new call is permitted. If allowed, records it and returns
// true. Rejected calls are not recorded and do not extend the window.
func (l *Limiter) Allow() bool {
	if l.maxCalls <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// Compact: remove expired timestamps
	valid := 0
	for _, ts := range l.timestamps {
		if ts.After(cutoff) {
			l.timestamps[valid] = ts
			valid++
		}
	}
	l.timestamps = l.timestamps[:valid]

	if len(l.timestamps) >= l.maxCalls {
		return false
	}

	l.timestamps = append(l.timestamps, now)
	return true
}

// Limit returns the configured per-window budget.
func (l *Limiter) Limit() int {
	return l.maxCalls
}
