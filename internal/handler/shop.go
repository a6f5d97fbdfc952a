package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/lunchmap/internal/domain"
)

// listShops handles GET /api/shops.
func (s *Server) listShops(w http.ResponseWriter, r *http.Request) {
	shops, err := s.shops.List(r.Context())
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	s.writeJSON(w, r, http.StatusOK, shops)
}

// getShop handles GET /api/shops/{id}.
func (s *Server) getShop(w http.ResponseWriter, r *http.Request) {
	shop, err := s.shops.GetByID(r.Context(), shopID(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeJSON(w, r, http.StatusNotFound, notFoundBody("shop not found"))
			return
		}
		s.writeInternal(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, shop)
}

// shopID returns the decoded {id} path parameter. chi matches on the raw
// path when it contains escapes, so the parameter may still be escaped.
func shopID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if v, err := url.PathUnescape(id); err == nil {
		return v
	}
	return id
}

// createShop handles POST /api/shops.
// Name is required and the coordinate must be within range; the other
// fields are stored verbatim.
func (s *Server) createShop(w http.ResponseWriter, r *http.Request) {
	var in domain.ShopInput
	if !s.decodeBody(w, r, &in) {
		return
	}
	if err := validateShopInput(in); err != nil {
		s.writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	created, err := s.shops.Create(r.Context(), domain.Shop{
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		URL:       in.URL,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	})
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "shop created", "shop_id", created.ID, "name", created.Name)
	s.writeJSON(w, r, http.StatusCreated, created)
}

func validateShopInput(in domain.ShopInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if !in.Location().InRange() {
		return fmt.Errorf("%w: latitude must be within [-90,90] and longitude within [-180,180]", domain.ErrValidation)
	}
	return nil
}
