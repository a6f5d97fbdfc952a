package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

// ---- mock API --------------------------------------------------------------

// mockAPI is a hand-written test double for service.API. A nil function
// field behaves as an empty, successful backend.
type mockAPI struct {
	listShops    func(ctx context.Context) ([]domain.Shop, error)
	createShop   func(ctx context.Context, in domain.ShopInput) (domain.Shop, error)
	listReviews  func(ctx context.Context, shopID string) ([]domain.Review, error)
	createReview func(ctx context.Context, shopID string, in domain.ReviewInput) (domain.Review, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockAPI) record(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// Calls returns the API calls made so far, e.g. "ListReviews s1".
func (m *mockAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

func (m *mockAPI) ListShops(ctx context.Context) ([]domain.Shop, error) {
	m.record("ListShops")
	if m.listShops != nil {
		return m.listShops(ctx)
	}
	return []domain.Shop{}, nil
}
func (m *mockAPI) CreateShop(ctx context.Context, in domain.ShopInput) (domain.Shop, error) {
	m.record("CreateShop %s", in.Name)
	if m.createShop != nil {
		return m.createShop(ctx, in)
	}
	return domain.Shop{ID: "new", Name: in.Name, Latitude: in.Latitude, Longitude: in.Longitude}, nil
}
func (m *mockAPI) ListReviews(ctx context.Context, shopID string) ([]domain.Review, error) {
	m.record("ListReviews %s", shopID)
	if m.listReviews != nil {
		return m.listReviews(ctx, shopID)
	}
	return []domain.Review{}, nil
}
func (m *mockAPI) CreateReview(ctx context.Context, shopID string, in domain.ReviewInput) (domain.Review, error) {
	m.record("CreateReview %s", shopID)
	if m.createReview != nil {
		return m.createReview(ctx, shopID, in)
	}
	return domain.Review{ShopID: shopID, Reviewer: in.Reviewer}, nil
}

// compile-time check: mockAPI must satisfy service.API.
var _ service.API = (*mockAPI)(nil)

// ---- helpers ---------------------------------------------------------------

var errDown = fmt.Errorf("backend down: %w", domain.ErrTransport)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shopA() domain.Shop {
	return domain.Shop{ID: "a", Name: "Ramen Ichiban", Latitude: 35.6812, Longitude: 139.7671}
}

func shopB() domain.Shop {
	return domain.Shop{ID: "b", Name: "Curry House", Latitude: 35.6895, Longitude: 139.6917}
}

// newCoordinator returns an initialized Coordinator over api.
func newCoordinator(t *testing.T, api *mockAPI) *service.Coordinator {
	t.Helper()
	c := service.NewCoordinator(api, discardLogger())
	require.NoError(t, c.Initialize(context.Background()))
	return c
}
