package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.Set("metrics:1", 42, 0)

	v, ok := c.Get("metrics:1")
	if !ok {
		t.Fatal("entry missing right after Set")
	}
	if v.(int) != 42 {
		t.Errorf("value = %v, want 42", v)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on unknown key reported a hit")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.Set("short", "value", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry still served")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not dropped on access, Len = %d", c.Len())
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after delete, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after clear, want 0", c.Len())
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.Set("k", 1, 0)
	c.Set("k", 2, 0)

	v, ok := c.Get("k")
	if !ok || v.(int) != 2 {
		t.Errorf("value = %v, want overwritten 2", v)
	}
}
