package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("want v, got %q %v %v", got, ok, err)
	}

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Error("missing key must be a miss")
	}
}

func TestMemory_SetOverwritesAndResetsExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemoryWithClock(clock.Now)
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("old"), time.Second)
	clock.Advance(900 * time.Millisecond)
	_ = m.Set(ctx, "k", []byte("new"), time.Second)
	clock.Advance(900 * time.Millisecond)

	got, ok, _ := m.Get(ctx, "k")
	if !ok || string(got) != "new" {
		t.Errorf("want refreshed value, got %q %v", got, ok)
	}
}

func TestMemory_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemoryWithClock(clock.Now)
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("v"), time.Second)

	clock.Advance(time.Second)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Error("entry must still be valid at exactly its expiry")
	}

	clock.Advance(time.Nanosecond)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry must be gone after its expiry")
	}
	if m.Len() != 0 {
		t.Errorf("expired entry should be purged on read, %d left", m.Len())
	}
}

func TestMemory_ExpiresInRealTime(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("v"), time.Second)
	time.Sleep(1100 * time.Millisecond)

	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry should have expired after 1s")
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "a", []byte("1"), time.Minute)
	_ = m.Set(ctx, "b", []byte("2"), time.Minute)

	_ = m.Delete(ctx, "a")
	if _, ok, _ := m.Get(ctx, "a"); ok {
		t.Error("deleted key must be a miss")
	}
	_ = m.Delete(ctx, "never-set")

	_ = m.Clear(ctx)
	if m.Len() != 0 {
		t.Errorf("clear should empty the cache, %d left", m.Len())
	}
}

func TestMemory_ValueIsCopied(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	_ = m.Set(ctx, "k", buf, time.Minute)
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value must not alias the caller's slice, got %q", got)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%10)
				_ = m.Set(ctx, key, []byte{byte(i)}, time.Minute)
				_, _, _ = m.Get(ctx, key)
				if j%50 == 0 {
					_ = m.Delete(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()

	if m.Len() > 10 {
		t.Errorf("expected at most 10 keys, got %d", m.Len())
	}
}
