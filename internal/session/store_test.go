package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("unexpected hit on empty store")
	}

	s.Put("a", "key-1")
	if got, ok := s.Get("a"); !ok || got != "key-1" {
		t.Fatalf("Get after Put = %q, %v", got, ok)
	}

	// Last write wins.
	s.Put("a", "key-2")
	if got, _ := s.Get("a"); got != "key-2" {
		t.Fatalf("expected overwrite, got %q", got)
	}

	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Fatal("entry survived Delete")
	}
}

func TestStore_ExpiryOnRead(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put("a", "key-1")

	now = now.Add(TTL - time.Minute)
	if _, ok := s.Get("a"); !ok {
		t.Fatal("entry expired too early")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatal("entry should be expired")
	}
}

func TestStore_SweepRemovesForeignExpiredEntries(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put("old", "key-old")
	now = now.Add(TTL + time.Minute)
	s.Put("fresh", "key-fresh")

	s.mu.Lock()
	_, oldThere := s.entries["old"]
	s.mu.Unlock()
	if oldThere {
		t.Fatal("expired entry not swept on access")
	}
}

func TestStore_Resolve(t *testing.T) {
	s := NewStore()
	s.Put("sess", "key-1")

	r := httptest.NewRequest(http.MethodGet, "/api/api-key", nil)
	if _, ok := s.Resolve(r); ok {
		t.Fatal("resolve without cookie should miss")
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "sess"})
	if got, ok := s.Resolve(r); !ok || got != "key-1" {
		t.Fatalf("Resolve = %q, %v", got, ok)
	}
}
