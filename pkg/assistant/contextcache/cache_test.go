package contextcache

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestSetGet(t *testing.T) {
	c := New()
	c.Set(42, "USER CONTEXT: prefers quiet areas")

	got, ok := c.Get(42)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "USER CONTEXT: prefers quiet areas" {
		t.Errorf("Get = %q", got)
	}
}

func TestMissForUnknownUser(t *testing.T) {
	c := New()
	if _, ok := c.Get(7); ok {
		t.Error("expected miss for unknown user")
	}
}

func TestExpiredEntryTreatedAsAbsent(t *testing.T) {
	c := &Cache{store: cache.New(10*time.Millisecond, time.Minute)}
	c.Set(1, "stale")

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Error("expired entry should be treated as absent")
	}
}

func TestInvalidate(t *testing.T) {
	c := New()
	c.Set(1, "a")
	c.Set(2, "b")

	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("invalidated entry should be gone")
	}
	if _, ok := c.Get(2); !ok {
		t.Error("other entries must survive a single invalidation")
	}

	c.InvalidateAll()
	if c.Len() != 0 {
		t.Errorf("Len after InvalidateAll = %d, want 0", c.Len())
	}
}
