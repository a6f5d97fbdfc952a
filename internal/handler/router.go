package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/lunchmap/internal/middleware"
)

// NewRouter builds the mock API router.
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → body limit.
// cmd/mockapi wraps the result in CORS; tests use it as is.
func NewRouter(srv *Server, logger *slog.Logger, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	srv.Register(r)
	return r
}
