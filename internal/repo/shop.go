// Package repo contains the storage behind the Lunchmap mock API.
// Each resource has its own file with an interface and an in-memory
// implementation. No business logic lives here, only storage and ID assignment.
package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ShopRepo defines the storage operations for Shops.
// Shops are never updated or deleted.
type ShopRepo interface {
	// Create stores a new shop and returns it with a generated ID.
	// Any ID on the input is ignored.
	Create(ctx context.Context, shop domain.Shop) (domain.Shop, error)

	// GetByID retrieves a single shop.
	// Returns domain.ErrNotFound if no shop with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Shop, error)

	// List returns all shops in registration order.
	List(ctx context.Context) ([]domain.Shop, error)
}

// memShopRepo is the in-memory implementation of ShopRepo.
type memShopRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Shop
}

// NewShopRepo constructs an empty in-memory ShopRepo.
// It is safe for concurrent use by multiple handlers.
func NewShopRepo() ShopRepo {
	return &memShopRepo{byID: make(map[string]domain.Shop)}
}

func (r *memShopRepo) Create(_ context.Context, shop domain.Shop) (domain.Shop, error) {
	shop.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[shop.ID] = shop
	r.order = append(r.order, shop.ID)
	return shop, nil
}

func (r *memShopRepo) GetByID(_ context.Context, id string) (domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shop, ok := r.byID[id]
	if !ok {
		return domain.Shop{}, fmt.Errorf("repo.ShopRepo.GetByID: %w", domain.ErrNotFound)
	}
	return shop, nil
}

func (r *memShopRepo) List(_ context.Context) ([]domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shops := make([]domain.Shop, 0, len(r.order))
	for _, id := range r.order {
		shops = append(shops, r.byID[id])
	}
	return shops, nil
}
