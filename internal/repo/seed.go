package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ShopSeed is one entry of a seed file: a shop with its existing reviews.
type ShopSeed struct {
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	Phone     string       `json:"phone"`
	URL       string       `json:"url"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Reviews   []ReviewSeed `json:"reviews"`
}

// ReviewSeed is a review nested under a ShopSeed.
type ReviewSeed struct {
	Reviewer         string    `json:"reviewer"`
	VisitCount       int       `json:"visitCount"`
	PriceRating      int       `json:"priceRating"`
	TasteRating      int       `json:"tasteRating"`
	AtmosphereRating int       `json:"atmosphereRating"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Seed loads a JSON array of ShopSeed from r into the given repos.
// Every entry is validated with the same rules the API enforces before
// anything is stored, so a bad file leaves the repos untouched.
// Returns the number of shops and reviews created.
func Seed(ctx context.Context, shops ShopRepo, reviews ReviewRepo, r io.Reader) (int, int, error) {
	var data []ShopSeed
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return 0, 0, fmt.Errorf("repo.Seed: parse json: %w", err)
	}

	for i, s := range data {
		in := domain.ShopInput{Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
		if err := in.Validate(); err != nil {
			return 0, 0, fmt.Errorf("repo.Seed: shop at index %d: %w", i, err)
		}
		if !in.Location().InRange() {
			return 0, 0, fmt.Errorf("repo.Seed: shop at index %d: %w: coordinate out of range", i, domain.ErrValidation)
		}
		for j, rv := range s.Reviews {
			if err := rv.input().Validate(); err != nil {
				return 0, 0, fmt.Errorf("repo.Seed: review %d of shop %d: %w", j, i, err)
			}
		}
	}

	var nShops, nReviews int
	for _, s := range data {
		shop, err := shops.Create(ctx, domain.Shop{
			Name:      s.Name,
			Address:   s.Address,
			Phone:     s.Phone,
			URL:       s.URL,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
		if err != nil {
			return nShops, nReviews, fmt.Errorf("repo.Seed: create shop %q: %w", s.Name, err)
		}
		nShops++

		for _, rv := range s.Reviews {
			in := rv.input()
			_, err := reviews.Create(ctx, domain.Review{
				ShopID:           shop.ID,
				Reviewer:         in.Reviewer,
				VisitCount:       in.VisitCount,
				PriceRating:      in.PriceRating,
				TasteRating:      in.TasteRating,
				AtmosphereRating: in.AtmosphereRating,
				Comment:          in.Comment,
				CreatedAt:        rv.CreatedAt,
			})
			if err != nil {
				return nShops, nReviews, fmt.Errorf("repo.Seed: create review for %q: %w", s.Name, err)
			}
			nReviews++
		}
	}
	return nShops, nReviews, nil
}

func (rv ReviewSeed) input() domain.ReviewInput {
	return domain.ReviewInput{
		Reviewer:         rv.Reviewer,
		VisitCount:       rv.VisitCount,
		PriceRating:      rv.PriceRating,
		TasteRating:      rv.TasteRating,
		AtmosphereRating: rv.AtmosphereRating,
		Comment:          rv.Comment,
	}
}
