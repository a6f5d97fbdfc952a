package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/lunchmap/internal/domain"
)

// StatusError is returned when the API answers with a non-2xx status.
// It matches domain.ErrTransport, and domain.ErrNotFound for a 404.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.Code)
	}
	return fmt.Sprintf("api status %d: %s", e.Code, e.Message)
}

// Is lets errors.Is match the sentinel errors this status represents.
func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrTransport:
		return true
	case domain.ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// errorEnvelope is the error body written by the API:
// {"error": {"code": "...", "message": "..."}}.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newStatusError(code int, body []byte) *StatusError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return &StatusError{Code: code, Message: env.Error.Message}
	}
	return &StatusError{Code: code, Message: strings.TrimSpace(string(body))}
}
