package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ReviewWorkflow shows the reviews of the selected shop and owns the review
// form.
//
// Every fetch is tagged with a generation number taken when it starts. A
// result is applied only if no newer Show or Refresh has started since, so a
// slow response for a shop that is no longer selected can never overwrite
// the list of the current one.
type ReviewWorkflow struct {
	client        ReviewClient
	log           *slog.Logger
	form          *ReviewForm
	onReviewAdded func()

	mu      sync.Mutex
	shop    *domain.Shop
	gen     uint64
	reviews []domain.Review
	loading bool
	message string
}

// ReviewView is a snapshot of the review panel for rendering.
type ReviewView struct {
	Shop    *domain.Shop
	Reviews []domain.Review
	Loading bool
	// Message is the scoped fetch error ("" when none).
	Message string
}

// fetchTicket identifies one fetch started by begin.
type fetchTicket struct {
	gen    uint64
	shopID string
}

// NewReviewWorkflow constructs the workflow. onReviewAdded, if non-nil, is
// called after every successful review submission.
func NewReviewWorkflow(c ReviewClient, logger *slog.Logger, onReviewAdded func()) *ReviewWorkflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewWorkflow{
		client:        c,
		log:           logger,
		form:          newReviewForm(),
		onReviewAdded: onReviewAdded,
		reviews:       []domain.Review{},
	}
}

// Form returns the review form.
func (w *ReviewWorkflow) Form() *ReviewForm {
	return w.form
}

// View returns a copy of the panel state.
func (w *ReviewWorkflow) View() ReviewView {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := ReviewView{
		Reviews: append([]domain.Review{}, w.reviews...),
		Loading: w.loading,
		Message: w.message,
	}
	if w.shop != nil {
		shop := *w.shop
		v.Shop = &shop
	}
	return v
}

// Show makes shop the current one and fetches its reviews. A nil shop
// clears the panel without a network call.
func (w *ReviewWorkflow) Show(ctx context.Context, shop *domain.Shop) error {
	t, ok := w.begin(shop)
	if !ok {
		return nil
	}
	return w.load(ctx, t)
}

// Refresh re-fetches the reviews of the current shop, if any.
func (w *ReviewWorkflow) Refresh(ctx context.Context) error {
	t, ok := w.beginRefresh()
	if !ok {
		return nil
	}
	return w.load(ctx, t)
}

// beginRefresh starts a new generation for the current shop. Reading the
// shop and bumping the generation happen under one lock, so a concurrent
// begin for another shop is never overwritten.
func (w *ReviewWorkflow) beginRefresh() (fetchTicket, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shop == nil {
		return fetchTicket{}, false
	}
	w.gen++
	w.loading = true
	w.message = ""
	return fetchTicket{gen: w.gen, shopID: w.shop.ID}, true
}

// begin switches the panel to shop and starts a new generation. It never
// blocks on the network, so the Coordinator may call it under its own lock.
// ok is false when there is nothing to fetch.
func (w *ReviewWorkflow) begin(shop *domain.Shop) (fetchTicket, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.gen++
	w.reviews = []domain.Review{}
	w.message = ""
	if shop == nil {
		w.shop = nil
		w.loading = false
		return fetchTicket{}, false
	}
	s := *shop
	w.shop = &s
	w.loading = true
	return fetchTicket{gen: w.gen, shopID: s.ID}, true
}

// load fetches the reviews for t and applies them if t is still current.
// A superseded result is dropped and nil is returned.
func (w *ReviewWorkflow) load(ctx context.Context, t fetchTicket) error {
	reviews, err := w.client.ListReviews(ctx, t.shopID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if t.gen != w.gen {
		w.log.DebugContext(ctx, "discarding stale reviews", "shop_id", t.shopID)
		return nil
	}
	w.loading = false
	if err != nil {
		w.log.WarnContext(ctx, "load reviews failed", "shop_id", t.shopID, "error", err)
		w.reviews = []domain.Review{}
		w.message = MsgLoadReviewsFailed
		return fmt.Errorf("service.ReviewWorkflow.load: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	w.reviews = reviews
	w.message = ""
	return nil
}

// Submit validates the form and posts the review for the current shop.
//   - Returns ErrSubmitInFlight if another submission has not finished.
//   - Returns domain.ErrValidation (and sets the inline message) when no shop
//     is selected or the draft is invalid; the API is not called.
//   - On API failure sets MsgPostReviewFailed and keeps the draft.
//   - On success resets the form, refreshes the list and calls the
//     onReviewAdded hook.
func (w *ReviewWorkflow) Submit(ctx context.Context) (domain.Review, error) {
	release, ok := w.form.flight.begin()
	if !ok {
		return domain.Review{}, fmt.Errorf("service.ReviewWorkflow.Submit: %w", ErrSubmitInFlight)
	}
	defer release()

	w.mu.Lock()
	shop := w.shop
	w.mu.Unlock()
	if shop == nil {
		w.form.setMessage(MsgSelectShop)
		return domain.Review{}, fmt.Errorf("service.ReviewWorkflow.Submit: %w: %s", domain.ErrValidation, MsgSelectShop)
	}

	in := w.form.Draft()
	if err := in.Validate(); err != nil {
		w.form.setMessage(domain.ValidationMessage(err))
		return domain.Review{}, fmt.Errorf("service.ReviewWorkflow.Submit: %w", err)
	}
	w.form.setMessage("")

	review, err := w.client.CreateReview(ctx, shop.ID, in)
	if err != nil {
		w.log.WarnContext(ctx, "post review failed", "shop_id", shop.ID, "error", err)
		w.form.setMessage(MsgPostReviewFailed)
		return domain.Review{}, fmt.Errorf("service.ReviewWorkflow.Submit: %w", err)
	}

	w.form.reset()
	// A failed refresh is already surfaced as the panel message.
	_ = w.Refresh(ctx)
	if w.onReviewAdded != nil {
		w.onReviewAdded()
	}
	return review, nil
}
