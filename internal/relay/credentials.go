package relay

import (
	"net/http"
	"strings"
)

// resolveAPIKey reads the caller's credential using the following priority:
//
//  1. X-Api-Key header
//  2. Authorization: Bearer <key>
//  3. session cookie via the injected store
//  4. server-configured default key
//
// Returns an empty string when no key is found anywhere.
func (h *Handler) resolveAPIKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-Api-Key")); key != "" {
		return key
	}
	if rest, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if key := strings.TrimSpace(rest); key != "" {
			return key
		}
	}
	if h.sessions != nil {
		if key, ok := h.sessions.Resolve(r); ok {
			return key
		}
	}
	return h.defaultAPIKey
}
