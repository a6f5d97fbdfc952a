package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lunchmap/internal/domain"
)

func reviewInput() domain.ReviewInput {
	in := domain.DefaultReviewInput()
	in.Reviewer = "Hanako"
	in.Comment = "Good"
	return in
}

func TestCreateReview_Returns201WithServerFields(t *testing.T) {
	f := newFixture()
	shop, err := f.shops.Create(context.Background(), domain.Shop{Name: "Curry"})
	require.NoError(t, err)

	rec := serve(f.h, http.MethodPost, "/api/shops/"+shop.ID+"/reviews", jsonBody(t, reviewInput()))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Review
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, shop.ID, got.ShopID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "Hanako", got.Reviewer)
}

func TestCreateReview_UnknownShop_Returns404(t *testing.T) {
	f := newFixture()

	rec := serve(f.h, http.MethodPost, "/api/shops/missing/reviews", jsonBody(t, reviewInput()))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReview_RatingOutOfRange_Returns422(t *testing.T) {
	f := newFixture()
	shop, err := f.shops.Create(context.Background(), domain.Shop{Name: "Curry"})
	require.NoError(t, err)

	in := reviewInput()
	in.TasteRating = 6
	rec := serve(f.h, http.MethodPost, "/api/shops/"+shop.ID+"/reviews", jsonBody(t, in))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "tasteRating")
}

func TestListReviews_ReturnsCreatedInOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	shop, err := f.shops.Create(ctx, domain.Shop{Name: "Curry"})
	require.NoError(t, err)

	for _, name := range []string{"a", "b"} {
		in := reviewInput()
		in.Reviewer = name
		rec := serve(f.h, http.MethodPost, "/api/shops/"+shop.ID+"/reviews", jsonBody(t, in))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := serve(f.h, http.MethodGet, "/api/shops/"+shop.ID+"/reviews", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Review
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Reviewer)
	assert.Equal(t, "b", got[1].Reviewer)
}

func TestListReviews_NoReviewsIsEmptyArray(t *testing.T) {
	f := newFixture()
	shop, err := f.shops.Create(context.Background(), domain.Shop{Name: "Curry"})
	require.NoError(t, err)

	rec := serve(f.h, http.MethodGet, "/api/shops/"+shop.ID+"/reviews", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
