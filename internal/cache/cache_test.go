// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("executive:summary", map[string]int{"installs": 42})

	got, ok := c.Get("executive:summary")
	if !ok {
		t.Fatal("expected cache hit")
	}
	data, ok := got.(map[string]int)
	if !ok || data["installs"] != 42 {
		t.Errorf("cached value = %v", got)
	}
}

func TestGetMissing(t *testing.T) {
	c := New("test", time.Minute)

	if _, ok := c.Get("nope"); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestExpiration(t *testing.T) {
	c := New("test", time.Minute)

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should miss")
	}

	stats := c.GetStats()
	if stats.Evictions == 0 {
		t.Error("expired access should count as eviction")
	}
}

func TestDelete(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("k", "v")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("deleted entry should miss")
	}

	// Deleting a missing key must not panic.
	c.Delete("missing")
}

func TestClear(t *testing.T) {
	c := New("test", time.Minute)

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
	c.Clear()

	if got := c.GetStats().TotalKeys; got != 0 {
		t.Errorf("TotalKeys after Clear = %d, want 0", got)
	}
	for i := 0; i < 10; i++ {
		if _, ok := c.Get(fmt.Sprintf("key-%d", i)); ok {
			t.Fatalf("key-%d survived Clear", i)
		}
	}
}

func TestStatsAndHitRate(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}

	want := float64(2) / float64(3) * 100.0
	if got := c.HitRate(); got < want-0.01 || got > want+0.01 {
		t.Errorf("HitRate = %v, want %v", got, want)
	}
}

func TestHitRateEmpty(t *testing.T) {
	c := New("test", time.Minute)
	if got := c.HitRate(); got != 0.0 {
		t.Errorf("HitRate on empty cache = %v, want 0", got)
	}
}

func TestCleanupRemovesExpired(t *testing.T) {
	c := New("test", time.Minute)

	c.SetWithTTL("stale", "v", time.Millisecond)
	c.Set("fresh", "v")
	time.Sleep(5 * time.Millisecond)

	c.cleanup()

	c.mu.RLock()
	_, staleExists := c.entries["stale"]
	_, freshExists := c.entries["fresh"]
	c.mu.RUnlock()

	if staleExists {
		t.Error("cleanup should remove expired entry")
	}
	if !freshExists {
		t.Error("cleanup should keep live entry")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New("test", time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j%10)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestGenerateKeyStable(t *testing.T) {
	type filter struct {
		Days    int
		Channel string
	}

	a := GenerateKey("paid:channels", filter{Days: 30, Channel: "meta"})
	b := GenerateKey("paid:channels", filter{Days: 30, Channel: "meta"})
	if a != b {
		t.Errorf("same params should produce same key: %q vs %q", a, b)
	}

	c := GenerateKey("paid:channels", filter{Days: 90, Channel: "meta"})
	if a == c {
		t.Error("different params should produce different keys")
	}

	d := GenerateKey("funnel:summary", filter{Days: 30, Channel: "meta"})
	if a == d {
		t.Error("different methods should produce different keys")
	}
}
