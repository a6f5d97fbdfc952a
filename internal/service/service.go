// Package service contains the client-side workflows of Lunchmap: the
// Selection/Mode Coordinator, the Shop Registration workflow and the Review
// workflow. Services validate form input, enforce the mode rules and
// orchestrate API calls. No HTTP lives here: services depend on the
// ShopClient and ReviewClient interfaces, not on the concrete API client.
package service

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ShopClient defines the shop operations the workflows depend on.
// Defining the interface here (in the consumer package) lets tests inject a
// mock without an HTTP server. *client.Client satisfies it.
type ShopClient interface {
	ListShops(ctx context.Context) ([]domain.Shop, error)
	CreateShop(ctx context.Context, in domain.ShopInput) (domain.Shop, error)
}

// ReviewClient defines the review operations the workflows depend on.
type ReviewClient interface {
	ListReviews(ctx context.Context, shopID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, shopID string, in domain.ReviewInput) (domain.Review, error)
}

// API is everything the Coordinator needs from the backend.
type API interface {
	ShopClient
	ReviewClient
}

// ErrSubmitInFlight is returned when a form is submitted while a previous
// submission of the same form has not finished yet.
var ErrSubmitInFlight = errors.New("submission already in progress")

// User-facing messages for failures that are not field validation.
const (
	MsgLoadShopsFailed   = "Failed to load shops."
	MsgRegisterFailed    = "Failed to register the shop."
	MsgLoadReviewsFailed = "Failed to load reviews."
	MsgPostReviewFailed  = "Failed to post the review."
	MsgSelectLocation    = "select a location on the map first"
	MsgSelectShop        = "select a shop first"
)

// flight is a single-flight guard: at most one holder at a time, and a
// second caller fails fast instead of queueing.
type flight struct {
	sem    *semaphore.Weighted
	active atomic.Bool
}

func newFlight() *flight {
	return &flight{sem: semaphore.NewWeighted(1)}
}

// begin claims the guard. The returned release func must be called exactly
// once, on every exit path (use defer).
func (f *flight) begin() (release func(), ok bool) {
	if !f.sem.TryAcquire(1) {
		return nil, false
	}
	f.active.Store(true)
	return func() {
		f.active.Store(false)
		f.sem.Release(1)
	}, true
}

// inFlight reports whether a holder currently owns the guard.
func (f *flight) inFlight() bool {
	return f.active.Load()
}
