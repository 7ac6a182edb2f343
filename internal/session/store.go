// Package session holds the in-memory, session-keyed API key cache and the
// /api/api-key endpoints the browser uses to stash a credential. Entries
// live for 24 hours; expired entries are swept lazily on every access, so
// no background timer is needed.
package session

import (
	"net/http"
	"sync"
	"time"
)

// TTL is the fixed lifetime of a stored credential.
const TTL = 24 * time.Hour

// CookieName is the httpOnly cookie carrying the opaque session identifier.
const CookieName = "session-id"

type entry struct {
	apiKey    string
	createdAt time.Time
}

// Store maps opaque session ids to API keys. Writes are last-write-wins;
// the mutex only protects the map itself.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put stores the API key under the given session id, resetting its expiry.
func (s *Store) Put(sessionID, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[sessionID] = entry{apiKey: apiKey, createdAt: s.now()}
}

// Get returns the API key for the session id, if present and unexpired.
func (s *Store) Get(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	e, ok := s.entries[sessionID]
	if !ok {
		return "", false
	}
	return e.apiKey, true
}

// Delete removes the session's credential, if any.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Resolve reads the session cookie from the request and returns the stored
// API key, if the session exists and is fresh.
func (s *Store) Resolve(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return s.Get(c.Value)
}

func (s *Store) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if now.Sub(e.createdAt) > TTL {
			delete(s.entries, id)
		}
	}
}
