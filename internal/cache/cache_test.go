package cache

import (
	"testing"
	"time"
)

func TestTTLStore_SetGet(t *testing.T) {
	s := New(8, time.Minute)

	s.Set("price:ethereum:0xabc", "snapshot")

	got, ok := s.Get("price:ethereum:0xabc")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.(string) != "snapshot" {
		t.Fatalf("got %v", got)
	}

	if _, ok := s.Get("price:ethereum:0xdef"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestTTLStore_Expiry(t *testing.T) {
	s := New(8, 20*time.Millisecond)

	s.Set("k", 1)
	time.Sleep(50 * time.Millisecond)

	if _, ok := s.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestTTLStore_ReplaceWholesale(t *testing.T) {
	s := New(8, time.Minute)

	s.Set("k", "old")
	s.Set("k", "new")

	got, _ := s.Get("k")
	if got.(string) != "new" {
		t.Fatalf("expected replacement, got %v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestTTLStore_Clear(t *testing.T) {
	s := New(8, time.Minute)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}
