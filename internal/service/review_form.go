package service

import (
	"fmt"
	"sync"

	"github.com/pkordes/lunchmap/internal/domain"
)

// RatingKind names one of the three rating axes of a review.
type RatingKind int

const (
	PriceRating RatingKind = iota
	TasteRating
	AtmosphereRating
)

func (k RatingKind) String() string {
	switch k {
	case PriceRating:
		return "priceRating"
	case TasteRating:
		return "tasteRating"
	case AtmosphereRating:
		return "atmosphereRating"
	default:
		return "unknownRating"
	}
}

// ReviewForm is the review draft plus its inline message and single-flight
// guard. It starts from domain.DefaultReviewInput and returns to it after
// every successful submission.
type ReviewForm struct {
	flight *flight

	mu      sync.Mutex
	draft   domain.ReviewInput
	message string
}

func newReviewForm() *ReviewForm {
	return &ReviewForm{flight: newFlight(), draft: domain.DefaultReviewInput()}
}

// Draft returns a copy of the current draft.
func (f *ReviewForm) Draft() domain.ReviewInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *ReviewForm) SetReviewer(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Reviewer = name
}

func (f *ReviewForm) SetComment(comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Comment = comment
}

// SetVisitCount stores n as entered; values below 1 are rejected at submit.
func (f *ReviewForm) SetVisitCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.VisitCount = n
}

// SetRating is the bounded selector for a rating axis: values outside
// [domain.MinRating, domain.MaxRating] are rejected and the current value
// is kept.
func (f *ReviewForm) SetRating(kind RatingKind, v int) error {
	if err := domain.ValidateRating(kind.String(), v); err != nil {
		return fmt.Errorf("service.ReviewForm.SetRating: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch kind {
	case PriceRating:
		f.draft.PriceRating = v
	case TasteRating:
		f.draft.TasteRating = v
	case AtmosphereRating:
		f.draft.AtmosphereRating = v
	default:
		return fmt.Errorf("service.ReviewForm.SetRating: %w: unknown rating %d", domain.ErrValidation, int(kind))
	}
	return nil
}

// Message is the inline message shown on the form ("" when none).
func (f *ReviewForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submitting reports whether a submission is in flight.
func (f *ReviewForm) Submitting() bool {
	return f.flight.inFlight()
}

func (f *ReviewForm) setMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
}

func (f *ReviewForm) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = domain.DefaultReviewInput()
	f.message = ""
}

// ParseRatingKind maps a short field name ("price", "taste", "atmosphere")
// or the JSON field name to its RatingKind.
func ParseRatingKind(name string) (RatingKind, bool) {
	switch name {
	case "price", "priceRating":
		return PriceRating, true
	case "taste", "tasteRating":
		return TasteRating, true
	case "atmosphere", "atmosphereRating":
		return AtmosphereRating, true
	default:
		return 0, false
	}
}
