// Package handler implements the HTTP handlers for the Lunchmap mock API.
// It speaks the same REST contract the client consumes (see spec/openapi.yaml)
// so the client and its workflows can be exercised end to end.
// Methods are split into resource files (health.go, shop.go, review.go) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/lunchmap/internal/repo"
	"github.com/pkordes/lunchmap/spec"
)

// Server holds the dependencies of every mock API handler.
type Server struct {
	shops   repo.ShopRepo
	reviews repo.ReviewRepo
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(shops repo.ShopRepo, reviews repo.ReviewRepo, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{shops: shops, reviews: reviews, log: logger}
}

// Register mounts all routes onto r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api/shops", func(r chi.Router) {
		r.Get("/", s.listShops)
		r.Post("/", s.createShop)
		r.Get("/{id}", s.getShop)
		r.Get("/{id}/reviews", s.listReviews)
		r.Post("/{id}/reviews", s.createReview)
	})
}

// Handler returns a bare chi router with all routes registered and no
// middleware. Handler tests use it; NewRouter adds the production stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
