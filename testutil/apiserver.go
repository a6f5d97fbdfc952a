// Package testutil provides shared helpers for tests that talk to the shop API.
// NewAPIServer starts the in-memory mock API on a loopback port with the same
// middleware stack cmd/mockapi uses, so client-side packages can be tested end
// to end without any external service.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/handler"
	"github.com/pkordes/lunchmap/internal/repo"
)

// MaxBodyBytes is the request body limit applied by NewAPIServer.
const MaxBodyBytes = 64 << 10

// API is a running mock API plus direct access to its stores, so tests can
// arrange data without going through HTTP.
type API struct {
	*httptest.Server
	Shops   repo.ShopRepo
	Reviews repo.ReviewRepo
}

// NewAPIServer starts an empty mock API. The server is closed automatically
// when the test finishes.
func NewAPIServer(t *testing.T) *API {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &API{Shops: repo.NewShopRepo(), Reviews: repo.NewReviewRepo()}
	api.Server = httptest.NewServer(handler.NewRouter(handler.NewServer(api.Shops, api.Reviews, logger), logger, MaxBodyBytes))
	t.Cleanup(api.Close)
	return api
}

// AddShop stores a shop directly and returns it with its assigned ID.
func (a *API) AddShop(t *testing.T, shop domain.Shop) domain.Shop {
	t.Helper()
	created, err := a.Shops.Create(context.Background(), shop)
	if err != nil {
		t.Fatalf("testutil.AddShop: %v", err)
	}
	return created
}

// AddReview stores a review for shopID directly and returns it.
func (a *API) AddReview(t *testing.T, shopID string, in domain.ReviewInput) domain.Review {
	t.Helper()
	created, err := a.Reviews.Create(context.Background(), domain.Review{
		ShopID:           shopID,
		Reviewer:         in.Reviewer,
		VisitCount:       in.VisitCount,
		PriceRating:      in.PriceRating,
		TasteRating:      in.TasteRating,
		AtmosphereRating: in.AtmosphereRating,
		Comment:          in.Comment,
	})
	if err != nil {
		t.Fatalf("testutil.AddReview: %v", err)
	}
	return created
}
