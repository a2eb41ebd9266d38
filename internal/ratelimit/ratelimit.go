package ratelimit

import (
	"sync"
	"time"
)

// Defaults: six writes per client per minute. Coarse abuse deterrent for
// a low-traffic site, not a security boundary.
const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 6
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window rate limiter with lazy reset. State is
// process-local and lost on restart. Stale keys are reused when their
// window elapses but never evicted; growth over the process lifetime is
// bounded by the number of distinct clients seen.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	window  time.Duration
	max     int
	now     func() time.Time
}

// New creates a Limiter allowing max requests per key per window.
func New(windowDur time.Duration, max int) *Limiter {
	if windowDur <= 0 {
		windowDur = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	return &Limiter{
		windows: make(map[string]*window),
		window:  windowDur,
		max:     max,
		now:     time.Now,
	}
}

// Limited reports whether the key has exhausted its window and records
// this request against it. The first call in a fresh window always
// passes.
func (l *Limiter) Limited(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.windows[key]
	if !ok || now.After(state.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.window)}
		return false
	}

	state.count++
	return state.count > l.max
}
