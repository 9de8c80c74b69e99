package cache

import (
	"testing"
	"time"
)

func TestSetGetAndExpire(t *testing.T) {
	c := Default()
	key := KeyFromStrings("unit", "expire", time.Now().String())

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected no value initially")
	}

	c.Set(key, "hello", 50*time.Millisecond)
	if v, ok := c.Get(key); !ok || v.(string) != "hello" {
		t.Fatalf("expected value 'hello', got %v ok=%v", v, ok)
	}

	// TTL granularity is one second internally, so wait past it
	time.Sleep(1100 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected expired value to be gone")
	}
}

func TestDelete(t *testing.T) {
	c := Default()
	key := KeyFromStrings("unit", "delete", time.Now().String())
	c.Set(key, 42, time.Minute)
	if v, ok := c.Get(key); !ok || v.(int) != 42 {
		t.Fatalf("expected 42 present before delete, got %v ok=%v", v, ok)
	}
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected deleted value to be absent")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := Default()
	stamp := time.Now().String()
	k1 := KeyFromStrings("rooms"+stamp, "wright town")
	k2 := KeyFromStrings("rooms"+stamp, "napier town")
	k3 := KeyFromStrings("tiffin"+stamp, "wright town")
	c.Set(k1, 1, time.Minute)
	c.Set(k2, 2, time.Minute)
	c.Set(k3, 3, time.Minute)

	c.InvalidatePrefix("rooms" + stamp)
	if _, ok := c.Get(k1); ok {
		t.Fatalf("expected %q invalidated", k1)
	}
	if _, ok := c.Get(k2); ok {
		t.Fatalf("expected %q invalidated", k2)
	}
	if v, ok := c.Get(k3); !ok || v.(int) != 3 {
		t.Fatalf("expected unrelated prefix to survive, got %v ok=%v", v, ok)
	}
}

func TestKeyFromStringsStability(t *testing.T) {
	k1 := KeyFromStrings("a", "b", "c")
	k2 := KeyFromStrings("a", "b", "c")
	if k1 != k2 {
		t.Fatalf("expected same inputs to yield same key")
	}
	k3 := KeyFromStrings("a", "b", "d")
	if k1 == k3 {
		t.Fatalf("expected different inputs to yield different key")
	}
}
