package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MinRating and MaxRating bound every rating axis.
	MinRating = 1
	MaxRating = 5

	// DefaultRating is the value a fresh review form starts with.
	DefaultRating = 3

	ratingAxes = 3
)

// Review is a rated, attributed comment on exactly one shop.
// ID and CreatedAt are assigned by the server.
type Review struct {
	ID               string    `json:"id"`
	ShopID           string    `json:"shopId"`
	Reviewer         string    `json:"reviewer"`
	VisitCount       int       `json:"visitCount"`
	PriceRating      int       `json:"priceRating"`
	TasteRating      int       `json:"tasteRating"`
	AtmosphereRating int       `json:"atmosphereRating"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OverallPercent is the sum of the three ratings as a percentage of the
// maximum, rounded half up: 5/5/5 is 100, 1/1/1 is 20.
func (r Review) OverallPercent() int {
	total := r.PriceRating + r.TasteRating + r.AtmosphereRating
	return int(math.Floor(float64(total)/float64(ratingAxes*MaxRating)*100 + 0.5))
}

// ReviewInput is the body of POST /api/shops/{id}/reviews.
type ReviewInput struct {
	Reviewer         string `json:"reviewer"`
	VisitCount       int    `json:"visitCount"`
	PriceRating      int    `json:"priceRating"`
	TasteRating      int    `json:"tasteRating"`
	AtmosphereRating int    `json:"atmosphereRating"`
	Comment          string `json:"comment"`
}

// DefaultReviewInput returns the values a review form is initialized with.
func DefaultReviewInput() ReviewInput {
	return ReviewInput{
		VisitCount:       1,
		PriceRating:      DefaultRating,
		TasteRating:      DefaultRating,
		AtmosphereRating: DefaultRating,
	}
}

// Validate enforces the review rules shared by the client form and the API:
//   - Reviewer must be non-empty (whitespace-only is rejected).
//   - VisitCount must be at least 1.
//   - All three ratings must be within [MinRating, MaxRating].
func (in ReviewInput) Validate() error {
	if strings.TrimSpace(in.Reviewer) == "" {
		return fmt.Errorf("%w: reviewer is required", ErrValidation)
	}
	if in.VisitCount < 1 {
		return fmt.Errorf("%w: visitCount must be at least 1", ErrValidation)
	}
	for _, r := range []struct {
		name  string
		value int
	}{
		{"priceRating", in.PriceRating},
		{"tasteRating", in.TasteRating},
		{"atmosphereRating", in.AtmosphereRating},
	} {
		if err := ValidateRating(r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRating checks a single rating value against the allowed range.
func ValidateRating(name string, v int) error {
	if v < MinRating || v > MaxRating {
		return fmt.Errorf("%w: %s must be between %d and %d", ErrValidation, name, MinRating, MaxRating)
	}
	return nil
}
