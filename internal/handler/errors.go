package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ErrorDetail is the machine-readable code plus human-readable message of a
// failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every non-2xx JSON response:
// {"error": {"code": "...", "message": "..."}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "shop not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: domain.ValidationMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// validation (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

// tooLargeBody matches the envelope middleware.NewMaxBodySizeHandler writes
// when the limit is detected before the handler runs.
func tooLargeBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "payload_too_large", Message: "request body too large"}}
}

func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal", Message: "internal server error"}}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "encode response failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
}

// writeInternal logs err and answers 500 without leaking details.
func (s *Server) writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	s.writeJSON(w, r, http.StatusInternalServerError, internalBody())
}

// decodeBody decodes a JSON request body into v. On failure it writes the
// error response itself and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		s.writeJSON(w, r, http.StatusBadRequest, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, r, http.StatusRequestEntityTooLarge, tooLargeBody())
			return false
		}
		s.writeJSON(w, r, http.StatusBadRequest, requestBody("malformed JSON body"))
		return false
	}
	return true
}
