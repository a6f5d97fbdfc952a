package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested shop does not exist.
// The mock API maps it to HTTP 404; the client returns it (alongside
// ErrTransport) when the API answers 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a field check
// (e.g. missing name, rating out of range).
// Client workflows surface it inline and never send the request;
// the mock API maps it to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrTransport is matched by every API client failure: non-success status,
// network error, or an undecodable response body.
var ErrTransport = errors.New("transport error")

// ValidationMessage returns the field message of a wrapped ErrValidation,
// without the sentinel prefix or any wrapping context.
// e.g. "service.X: validation error: name is required" → "name is required".
// Errors that do not carry the prefix are returned as their full text.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
