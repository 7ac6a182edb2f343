package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrMalformedBody = errors.New("malformed request body")
)

type jsonError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON error body with the given status code. Only valid
// before streaming headers have been sent; once a stream is open, errors go
// in-band over the event stream instead.
func WriteJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body := jsonError{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(body)
}
