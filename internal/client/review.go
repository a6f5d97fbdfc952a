package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ListReviews returns all reviews for a shop.
// Always returns a non-nil slice on success.
func (c *Client) ListReviews(ctx context.Context, shopID string) ([]domain.Review, error) {
	path, err := shopPath(shopID, "/reviews")
	if err != nil {
		return nil, fmt.Errorf("client.Client.ListReviews: %w: %w", domain.ErrTransport, err)
	}
	reviews, err := list[domain.Review](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("client.Client.ListReviews: %w", err)
	}
	return reviews, nil
}

// CreateReview posts a review for shopID. The server assigns ID and CreatedAt.
func (c *Client) CreateReview(ctx context.Context, shopID string, in domain.ReviewInput) (domain.Review, error) {
	path, err := shopPath(shopID, "/reviews")
	if err != nil {
		return domain.Review{}, fmt.Errorf("client.Client.CreateReview: %w: %w", domain.ErrTransport, err)
	}
	var review domain.Review
	if err := c.call(ctx, http.MethodPost, path, in, &review); err != nil {
		return domain.Review{}, fmt.Errorf("client.Client.CreateReview: %w", err)
	}
	return review, nil
}
