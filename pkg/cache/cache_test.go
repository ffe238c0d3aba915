package cache

import (
	"strings"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 42)

	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Fatalf("expected (42, true), got (%d, %v)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New[string, int](20*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Invalidate("a")

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestInvalidateMissingKeyIsNoop(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Invalidate("b") // yok — panic de yok, "a" da etkilenmez

	if _, ok := c.Get("a"); !ok {
		t.Fatal("unrelated entry must survive")
	}
}

func TestInvalidateFuncMatchesByPredicate(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("admin:10:", 1)
	c.Set("admin:10:c2", 2)
	c.Set("menu", 3)

	c.InvalidateFunc(func(key string) bool {
		return strings.HasPrefix(key, "admin:")
	})

	if _, ok := c.Get("admin:10:"); ok {
		t.Fatal("prefixed entry must be dropped")
	}
	if _, ok := c.Get("admin:10:c2"); ok {
		t.Fatal("prefixed entry must be dropped")
	}
	if _, ok := c.Get("menu"); !ok {
		t.Fatal("non-matching entry must survive")
	}
}

func TestClearEmptiesCache(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCleanupEvictsExpiredEntries(t *testing.T) {
	c := New[string, int](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("a", 1)

	deadline := time.Now().Add(time.Second)
	for c.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Fatal("cleanup goroutine did not evict expired entry")
	}
}
