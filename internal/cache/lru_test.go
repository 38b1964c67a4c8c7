package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCache_Expiry(t *testing.T) {
	c, clock := newTestCache(4, time.Second)
	c.Set("summary", "a")

	if v, ok := c.Get("summary"); !ok || v != "a" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}
	clock.advance(time.Second)
	if _, ok := c.Get("summary"); ok {
		t.Fatal("expected entry to expire after ttl")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry should be dropped on read, size=%d", c.Size())
	}
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was used recently and should remain")
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestLRUCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be deleted")
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("size after clear = %d", c.Size())
	}
	c.Set("c", "3")
	if v, _ := c.Get("c"); v != "3" {
		t.Error("cache unusable after clear")
	}
}

func TestLRUCache_CleanExpired(t *testing.T) {
	c, clock := newTestCache(4, time.Second)
	c.Set("old", "1")
	clock.advance(2 * time.Second)
	c.Set("new", "2")

	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("cleaned %d entries, want 1", n)
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestManager_StopEndsLoop(t *testing.T) {
	m := NewManager()
	c, _ := newTestCache(1, time.Nanosecond)
	m.Register(c)
	m.StartCleanup(time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
