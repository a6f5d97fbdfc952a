package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ListShops returns every registered shop.
// Always returns a non-nil slice on success.
func (c *Client) ListShops(ctx context.Context) ([]domain.Shop, error) {
	shops, err := list[domain.Shop](ctx, c, "/api/shops")
	if err != nil {
		return nil, fmt.Errorf("client.Client.ListShops: %w", err)
	}
	return shops, nil
}

// GetShop returns a single shop by ID.
// A missing shop yields an error matching both domain.ErrTransport and
// domain.ErrNotFound.
func (c *Client) GetShop(ctx context.Context, id string) (domain.Shop, error) {
	path, err := shopPath(id, "")
	if err != nil {
		return domain.Shop{}, fmt.Errorf("client.Client.GetShop: %w: %w", domain.ErrTransport, err)
	}
	var shop domain.Shop
	if err := c.call(ctx, http.MethodGet, path, nil, &shop); err != nil {
		return domain.Shop{}, fmt.Errorf("client.Client.GetShop: %w", err)
	}
	return shop, nil
}

// CreateShop registers a new shop and returns it with its server-assigned ID.
func (c *Client) CreateShop(ctx context.Context, in domain.ShopInput) (domain.Shop, error) {
	var shop domain.Shop
	if err := c.call(ctx, http.MethodPost, "/api/shops", in, &shop); err != nil {
		return domain.Shop{}, fmt.Errorf("client.Client.CreateShop: %w", err)
	}
	return shop, nil
}
