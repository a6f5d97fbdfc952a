package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ReviewRepo defines the storage operations for Reviews.
// Reviews are scoped by shop; callers verify the shop exists first.
type ReviewRepo interface {
	// Create stores a new review and returns it with a generated ID and
	// CreatedAt. CreatedAt is only generated when the input leaves it zero.
	Create(ctx context.Context, review domain.Review) (domain.Review, error)

	// ListByShopID returns all reviews for a shop in the order they were created.
	// Returns an empty slice for a shop without reviews.
	ListByShopID(ctx context.Context, shopID string) ([]domain.Review, error)
}

// memReviewRepo is the in-memory implementation of ReviewRepo.
type memReviewRepo struct {
	mu     sync.RWMutex
	byShop map[string][]domain.Review
	now    func() time.Time
}

// NewReviewRepo constructs an empty in-memory ReviewRepo.
func NewReviewRepo() ReviewRepo {
	return &memReviewRepo{
		byShop: make(map[string][]domain.Review),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *memReviewRepo) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	review.ID = uuid.NewString()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byShop[review.ShopID] = append(r.byShop[review.ShopID], review)
	return review, nil
}

func (r *memReviewRepo) ListByShopID(_ context.Context, shopID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.byShop[shopID]
	out := make([]domain.Review, len(src))
	copy(out, src)
	return out, nil
}
