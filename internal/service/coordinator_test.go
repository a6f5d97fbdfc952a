package service_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

// ---- Initialize ----------------------------------------------------------------

func TestCoordinator_Initialize_OK(t *testing.T) {
	api := &mockAPI{
		listShops: func(_ context.Context) ([]domain.Shop, error) {
			return []domain.Shop{shopA(), shopB()}, nil
		},
	}
	c := service.NewCoordinator(api, discardLogger())
	assert.True(t, c.Snapshot().Loading)

	require.NoError(t, c.Initialize(context.Background()))

	s := c.Snapshot()
	assert.False(t, s.Loading)
	assert.Len(t, s.Shops, 2)
	assert.Empty(t, s.LoadError)
	assert.Equal(t, service.ModeBrowsing, s.Mode)
}

func TestCoordinator_Initialize_Failure(t *testing.T) {
	api := &mockAPI{
		listShops: func(_ context.Context) ([]domain.Shop, error) {
			return nil, errDown
		},
	}
	c := service.NewCoordinator(api, discardLogger())

	err := c.Initialize(context.Background())

	require.ErrorIs(t, err, domain.ErrTransport)
	s := c.Snapshot()
	assert.Equal(t, service.MsgLoadShopsFailed, s.LoadError)
	assert.NotNil(t, s.Shops)
	assert.Empty(t, s.Shops)
	assert.False(t, s.Loading)
}

func TestCoordinator_Initialize_Once(t *testing.T) {
	api := &mockAPI{}
	c := newCoordinator(t, api)

	require.NoError(t, c.Initialize(context.Background()))

	assert.Equal(t, []string{"ListShops"}, api.Calls())
}

func TestCoordinator_EventsIgnoredWhileLoading(t *testing.T) {
	api := &mockAPI{}
	c := service.NewCoordinator(api, discardLogger())

	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))

	assert.Nil(t, c.Snapshot().SelectedShop)
	assert.Empty(t, api.Calls())
}

// ---- selection -----------------------------------------------------------------

func TestCoordinator_MarkerClick_SelectsAndLoadsReviews(t *testing.T) {
	api := &mockAPI{
		listReviews: func(_ context.Context, shopID string) ([]domain.Review, error) {
			return reviewsFor(shopID, "Taro"), nil
		},
	}
	c := newCoordinator(t, api)

	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))

	s := c.Snapshot()
	require.NotNil(t, s.SelectedShop)
	assert.Equal(t, "a", s.SelectedShop.ID)
	v := c.Reviews().View()
	require.Len(t, v.Reviews, 1)
	assert.Equal(t, "a", v.Reviews[0].ShopID)
}

func TestCoordinator_MarkerClick_SameShopDoesNotRefetch(t *testing.T) {
	api := &mockAPI{}
	c := newCoordinator(t, api)

	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))
	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))

	assert.Equal(t, []string{"ListShops", "ListReviews a"}, api.Calls())
}

func TestCoordinator_MapClickIgnoredWhileBrowsing(t *testing.T) {
	c := newCoordinator(t, &mockAPI{})

	require.NoError(t, c.OnMapClick(context.Background(), tokyo))

	assert.Nil(t, c.Snapshot().PendingLocation)
}

func TestCoordinator_ReviewFailureLeavesStateUntouched(t *testing.T) {
	api := &mockAPI{
		listShops: func(_ context.Context) ([]domain.Shop, error) {
			return []domain.Shop{shopA()}, nil
		},
		listReviews: func(_ context.Context, _ string) ([]domain.Review, error) {
			return nil, errDown
		},
	}
	c := newCoordinator(t, api)

	err := c.OnMarkerClick(context.Background(), shopA())

	require.ErrorIs(t, err, domain.ErrTransport)
	s := c.Snapshot()
	assert.Empty(t, s.LoadError)
	require.NotNil(t, s.SelectedShop)
	assert.Equal(t, service.MsgLoadReviewsFailed, c.Reviews().View().Message)
}

func TestCoordinator_StaleReviewsDiscarded(t *testing.T) {
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	api := &mockAPI{
		listReviews: func(_ context.Context, shopID string) ([]domain.Review, error) {
			if shopID == "a" {
				close(startedA)
				<-releaseA
			}
			return reviewsFor(shopID, "reviewer of "+shopID), nil
		},
	}
	c := newCoordinator(t, api)

	done := make(chan error, 1)
	go func() { done <- c.OnMarkerClick(context.Background(), shopA()) }()
	<-startedA

	// B is selected and loaded while A's fetch is still outstanding.
	require.NoError(t, c.OnMarkerClick(context.Background(), shopB()))
	close(releaseA)
	require.NoError(t, <-done)

	v := c.Reviews().View()
	require.NotNil(t, v.Shop)
	assert.Equal(t, "b", v.Shop.ID)
	require.Len(t, v.Reviews, 1)
	assert.Equal(t, "b", v.Reviews[0].ShopID, "late response for A must not replace B's reviews")
	assert.False(t, v.Loading)
	assert.Equal(t, "b", c.Snapshot().SelectedShop.ID)
}

func TestCoordinator_StaleResponseAfterEnteringAddMode(t *testing.T) {
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	api := &mockAPI{
		listReviews: func(_ context.Context, shopID string) ([]domain.Review, error) {
			close(startedA)
			<-releaseA
			return reviewsFor(shopID, "Taro"), nil
		},
	}
	c := newCoordinator(t, api)

	done := make(chan error, 1)
	go func() { done <- c.OnMarkerClick(context.Background(), shopA()) }()
	<-startedA

	c.ToggleAddMode()
	close(releaseA)
	require.NoError(t, <-done)

	v := c.Reviews().View()
	assert.Nil(t, v.Shop)
	assert.Empty(t, v.Reviews)
}

func TestCoordinator_RefreshDoesNotOverrideNewerSelection(t *testing.T) {
	var blockA atomic.Bool
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	api := &mockAPI{
		listReviews: func(_ context.Context, shopID string) ([]domain.Review, error) {
			if shopID == "a" && blockA.Load() {
				close(startedA)
				<-releaseA
			}
			return reviewsFor(shopID, "reviewer of "+shopID), nil
		},
	}
	c := newCoordinator(t, api)
	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))

	blockA.Store(true)
	done := make(chan error, 1)
	go func() { done <- c.Reviews().Refresh(context.Background()) }()
	<-startedA

	// B is selected while the refresh for A is still outstanding.
	require.NoError(t, c.OnMarkerClick(context.Background(), shopB()))
	close(releaseA)
	require.NoError(t, <-done)

	v := c.Reviews().View()
	require.NotNil(t, v.Shop)
	assert.Equal(t, "b", v.Shop.ID)
	require.Len(t, v.Reviews, 1)
	assert.Equal(t, "b", v.Reviews[0].ShopID)

	fillReviewForm(c.Reviews().Form())
	review, err := c.SubmitReview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", review.ShopID, "review goes to the selected shop")
}

// ---- add mode ------------------------------------------------------------------

func TestCoordinator_ToggleAddMode(t *testing.T) {
	c := newCoordinator(t, &mockAPI{})
	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))

	assert.Equal(t, service.ModeAddingShop, c.ToggleAddMode())
	s := c.Snapshot()
	assert.Nil(t, s.SelectedShop)
	assert.Nil(t, c.Reviews().View().Shop, "review panel cleared with the selection")

	require.NoError(t, c.OnMarkerClick(context.Background(), shopB()))
	assert.Nil(t, c.Snapshot().SelectedShop, "marker clicks are ignored while adding")

	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	require.NotNil(t, c.Snapshot().PendingLocation)

	assert.Equal(t, service.ModeBrowsing, c.ToggleAddMode())
	assert.Nil(t, c.Snapshot().PendingLocation)
}

func TestCoordinator_LeavingAddModeResetsDraft(t *testing.T) {
	c := newCoordinator(t, &mockAPI{})
	c.ToggleAddMode()
	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	fillShopDraft(c.Registration())

	c.ToggleAddMode()

	assert.Equal(t, service.ShopDraft{}, c.Registration().Draft())
}

func TestCoordinator_SubmitShop_NoPendingLocation(t *testing.T) {
	api := &mockAPI{}
	c := newCoordinator(t, api)
	c.ToggleAddMode()
	fillShopDraft(c.Registration())

	_, err := c.SubmitShop(context.Background())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, service.MsgSelectLocation, c.Registration().Message())
	assert.Equal(t, []string{"ListShops"}, api.Calls())
}

func TestCoordinator_SubmitShop_OK(t *testing.T) {
	var shops []domain.Shop
	api := &mockAPI{
		listShops: func(_ context.Context) ([]domain.Shop, error) {
			return append([]domain.Shop{}, shops...), nil
		},
		createShop: func(_ context.Context, in domain.ShopInput) (domain.Shop, error) {
			shop := domain.Shop{ID: "new", Name: in.Name, Latitude: in.Latitude, Longitude: in.Longitude}
			shops = append(shops, shop)
			return shop, nil
		},
	}
	c := newCoordinator(t, api)
	c.ToggleAddMode()
	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	fillShopDraft(c.Registration())

	shop, err := c.SubmitShop(context.Background())

	require.NoError(t, err)
	assert.Equal(t, tokyo, shop.Location())
	s := c.Snapshot()
	assert.Equal(t, service.ModeBrowsing, s.Mode)
	assert.Nil(t, s.PendingLocation)
	require.Len(t, s.Shops, 1, "list re-fetched from the API")
	assert.Equal(t, "new", s.Shops[0].ID)
	assert.Equal(t, service.ShopDraft{}, c.Registration().Draft())
	assert.Equal(t, []string{"ListShops", "CreateShop Ramen Ichiban", "ListShops"}, api.Calls())
}

func TestCoordinator_SubmitShop_APIFailureKeepsPendingLocation(t *testing.T) {
	api := &mockAPI{
		createShop: func(_ context.Context, _ domain.ShopInput) (domain.Shop, error) {
			return domain.Shop{}, errDown
		},
	}
	c := newCoordinator(t, api)
	c.ToggleAddMode()
	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	fillShopDraft(c.Registration())

	_, err := c.SubmitShop(context.Background())

	require.ErrorIs(t, err, domain.ErrTransport)
	s := c.Snapshot()
	assert.Equal(t, service.ModeAddingShop, s.Mode)
	require.NotNil(t, s.PendingLocation)
	assert.Equal(t, tokyo, *s.PendingLocation)
	assert.Equal(t, service.MsgRegisterFailed, c.Registration().Message())
	assert.Equal(t, "Ramen Ichiban", c.Registration().Draft().Name)
}

func TestCoordinator_SubmitShop_RefetchFailureStillRegisters(t *testing.T) {
	calls := 0
	api := &mockAPI{
		listShops: func(_ context.Context) ([]domain.Shop, error) {
			calls++
			if calls > 1 {
				return nil, errDown
			}
			return []domain.Shop{shopA()}, nil
		},
	}
	c := newCoordinator(t, api)
	c.ToggleAddMode()
	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	fillShopDraft(c.Registration())

	_, err := c.SubmitShop(context.Background())

	require.NoError(t, err)
	s := c.Snapshot()
	assert.Equal(t, service.ModeBrowsing, s.Mode)
	assert.Nil(t, s.PendingLocation)
	assert.Equal(t, service.MsgLoadShopsFailed, s.LoadError)
	assert.Len(t, s.Shops, 1, "previous list kept")
}

func TestCoordinator_OnRegistrationCancelled(t *testing.T) {
	c := newCoordinator(t, &mockAPI{})
	c.ToggleAddMode()
	require.NoError(t, c.OnMapClick(context.Background(), tokyo))
	fillShopDraft(c.Registration())

	c.OnRegistrationCancelled()

	s := c.Snapshot()
	assert.Equal(t, service.ModeAddingShop, s.Mode)
	assert.Nil(t, s.PendingLocation)
	assert.Equal(t, service.ShopDraft{}, c.Registration().Draft())
}

// ---- reviews -------------------------------------------------------------------

func TestCoordinator_SubmitReview(t *testing.T) {
	api := &mockAPI{}
	c := newCoordinator(t, api)
	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))
	fillReviewForm(c.Reviews().Form())

	review, err := c.SubmitReview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "a", review.ShopID)
	assert.Equal(t, []string{"ListShops", "ListReviews a", "CreateReview a", "ListReviews a"}, api.Calls())
}

func TestCoordinator_ReviewDraftKeptAcrossSelections(t *testing.T) {
	c := newCoordinator(t, &mockAPI{})
	require.NoError(t, c.OnMarkerClick(context.Background(), shopA()))
	fillReviewForm(c.Reviews().Form())

	require.NoError(t, c.OnMarkerClick(context.Background(), shopB()))

	assert.Equal(t, "Hanako", c.Reviews().Form().Draft().Reviewer)
}
