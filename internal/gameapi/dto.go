package gameapi

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Envelope is the wrapper around every backend response
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// reason returns the backend's explanation for success=false, if any
func (e Envelope) reason() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// RequestOptions describes a single call. Method defaults to GET.
type RequestOptions struct {
	Method  string
	Headers http.Header // Merged over the JSON defaults; caller values win
	Body    any         // Encoded as JSON when non-nil
}

// response is what the breaker-protected transport hands back
type response struct {
	status int
	body   []byte
}
