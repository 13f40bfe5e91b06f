package ratelimit

import (
	"testing"
	"time"
)

// newTestLimiter builds a limiter with a controllable clock and no sweeper.
func newTestLimiter(limit int, win time.Duration, now *time.Time) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  win,
		now:     func() time.Time { return *now },
	}
}

func TestAllowDeniesEleventhRequest(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(10, time.Minute, &now)

	for i := 1; i <= 10; i++ {
		if !l.Allow("guest-1") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("guest-1") {
		t.Error("11th request inside the window should be denied")
	}
}

func TestWindowElapsesAndResetsToOne(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(10, time.Minute, &now)

	for i := 0; i < 11; i++ {
		l.Allow("guest-2")
	}

	now = now.Add(61 * time.Second)

	if !l.Allow("guest-2") {
		t.Fatal("request after window elapsed should be allowed")
	}
	st, ok := l.Status("guest-2")
	if !ok {
		t.Fatal("status should exist after new request")
	}
	if st.Count != 1 {
		t.Errorf("count after reset = %d, want 1", st.Count)
	}
}

func TestIdentitiesIsolated(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(2, time.Minute, &now)

	l.Allow("a")
	l.Allow("a")
	if l.Allow("a") {
		t.Error("a should be capped")
	}
	if !l.Allow("b") {
		t.Error("b must not share a's window")
	}
}

func TestResetThenStatusAbsent(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(10, time.Minute, &now)

	l.Allow("guest-3")
	l.Reset("guest-3")

	if _, ok := l.Status("guest-3"); ok {
		t.Error("status after reset should be absent")
	}
}

func TestSweepDropsExpired(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(10, time.Minute, &now)

	l.Allow("stale")
	now = now.Add(2 * time.Minute)
	l.sweep()

	l.mu.Lock()
	_, exists := l.windows["stale"]
	l.mu.Unlock()
	if exists {
		t.Error("expired window should be swept")
	}
}
