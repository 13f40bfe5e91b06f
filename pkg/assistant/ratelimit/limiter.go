// Package ratelimit implements the per-identity sliding window counter used
// in front of the model pipeline. State is process-local and resets on
// restart; guests are identified by session id, logged-in users by user id.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the counting window.
	DefaultWindow = 60 * time.Second
	// DefaultLimit is the request ceiling per window.
	DefaultLimit = 10
)

// Status is the administrative read view of one identity's window.
type Status struct {
	Identity  string    `json:"identity"`
	Count     int       `json:"count"`
	Limit     int       `json:"limit"`
	ResetsAt  time.Time `json:"resets_at"`
	Remaining int       `json:"remaining"`
}

type window struct {
	count    int
	resetsAt time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

// New creates a limiter and starts a background sweep that drops expired
// windows so the map does not grow with one-off guests.
func New(limit int, win time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if win <= 0 {
		win = DefaultWindow
	}

	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  win,
		now:     time.Now,
	}

	go func() {
		for {
			time.Sleep(win)
			l.sweep()
		}
	}()

	return l
}

// Allow records one request for identity and reports whether it is inside the
// ceiling. The count resets to 1 when the window has elapsed; a request is
// denied when the counter already reached the ceiling before this call.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[identity]
	if !ok || now.After(w.resetsAt) {
		l.windows[identity] = &window{count: 1, resetsAt: now.Add(l.window)}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Status returns the current window for identity, if one exists.
func (l *Limiter) Status(identity string) (Status, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok || l.now().After(w.resetsAt) {
		return Status{}, false
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Identity:  identity,
		Count:     w.count,
		Limit:     l.limit,
		ResetsAt:  w.resetsAt,
		Remaining: remaining,
	}, true
}

// Reset clears the window for identity.
func (l *Limiter) Reset(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, identity)
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, w := range l.windows {
		if now.After(w.resetsAt) {
			delete(l.windows, id)
		}
	}
}
