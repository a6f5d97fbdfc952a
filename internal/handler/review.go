package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/lunchmap/internal/domain"
)

// listReviews handles GET /api/shops/{id}/reviews.
// An unknown shop yields 404 rather than an empty list.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	id := shopID(r)
	if !s.shopExists(w, r, id) {
		return
	}

	reviews, err := s.reviews.ListByShopID(r.Context(), id)
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	s.writeJSON(w, r, http.StatusOK, reviews)
}

// createReview handles POST /api/shops/{id}/reviews.
// The server assigns id and createdAt.
func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	id := shopID(r)
	if !s.shopExists(w, r, id) {
		return
	}

	var in domain.ReviewInput
	if !s.decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	created, err := s.reviews.Create(r.Context(), domain.Review{
		ShopID:           id,
		Reviewer:         in.Reviewer,
		VisitCount:       in.VisitCount,
		PriceRating:      in.PriceRating,
		TasteRating:      in.TasteRating,
		AtmosphereRating: in.AtmosphereRating,
		Comment:          in.Comment,
	})
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "review created", "shop_id", id, "review_id", created.ID)
	s.writeJSON(w, r, http.StatusCreated, created)
}

// shopExists writes a 404 (or 500) and returns false when id cannot be
// resolved.
func (s *Server) shopExists(w http.ResponseWriter, r *http.Request, id string) bool {
	if _, err := s.shops.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeJSON(w, r, http.StatusNotFound, notFoundBody("shop not found"))
			return false
		}
		s.writeInternal(w, r, err)
		return false
	}
	return true
}
