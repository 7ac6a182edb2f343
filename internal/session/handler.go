package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/zhengjr9/promptyoo/internal/httperr"
)

// Handler serves GET/POST/DELETE /api/api-key.
type Handler struct {
	store  *Store
	secure bool
}

// NewHandler constructs a Handler. secure controls the cookie's Secure flag
// and should be true behind TLS.
func NewHandler(store *Store, secure bool) *Handler {
	return &Handler{store: store, secure: secure}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.post(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		httperr.WriteJSON(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := h.store.Resolve(r)
	if !ok {
		writeJSON(w, map[string]any{"hasApiKey": false})
		return
	}
	writeJSON(w, map[string]any{"hasApiKey": true, "apiKey": apiKey})
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var body struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.APIKey == "" {
		httperr.WriteJSON(w, http.StatusBadRequest, "invalid API key")
		return
	}

	sessionID := ""
	if c, err := r.Cookie(CookieName); err == nil {
		sessionID = c.Value
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	h.store.Put(sessionID, body.APIKey)
	slog.Info("stored API key in session", "session", abbrev(sessionID))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
	writeJSON(w, map[string]any{"success": true})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		h.store.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, map[string]any{"success": true})
}

// abbrev shortens a session id for logging; the full id never hits the logs.
func abbrev(sessionID string) string {
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return sessionID + "..."
}

func writeJSON(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
