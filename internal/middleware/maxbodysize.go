package middleware

import (
	"encoding/json"
	"net/http"
)

// tooLargeResponse is the API error envelope for an oversized body:
// {"error": {"code": "payload_too_large", "message": "request body too large"}}.
type tooLargeResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. Requests advertising a larger Content-Length are
// rejected with 413 Request Entity Too Large before reaching the next handler;
// bodies of unknown length are wrapped in http.MaxBytesReader so the read
// fails once the limit is crossed.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeTooLarge(w)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeTooLarge(w http.ResponseWriter) {
	var body tooLargeResponse
	body.Error.Code = "payload_too_large"
	body.Error.Message = "request body too large"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	_ = json.NewEncoder(w).Encode(body)
}
