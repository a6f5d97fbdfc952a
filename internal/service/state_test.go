package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

func loadedState(shops ...domain.Shop) service.State {
	return service.InitialState().Loaded(shops, nil)
}

func TestInitialState(t *testing.T) {
	s := service.InitialState()

	assert.Equal(t, service.ModeBrowsing, s.Mode)
	assert.True(t, s.Loading)
	assert.NotNil(t, s.Shops)
	assert.Empty(t, s.Shops)
	assert.Nil(t, s.SelectedShop)
	assert.Nil(t, s.PendingLocation)
}

func TestState_Route_Browsing(t *testing.T) {
	s := loadedState(shopA(), shopB())

	s = s.Route(service.MarkerClick{Shop: shopB()})
	require.NotNil(t, s.SelectedShop)
	assert.Equal(t, "b", s.SelectedShop.ID)

	s = s.Route(service.MapClick{At: domain.Coordinate{Latitude: 1, Longitude: 2}})
	assert.Nil(t, s.PendingLocation, "map clicks are ignored while browsing")
	assert.Equal(t, "b", s.SelectedShop.ID)
}

func TestState_Route_AddingShop(t *testing.T) {
	s := loadedState(shopA()).ToggleAddMode()

	s = s.Route(service.MarkerClick{Shop: shopA()})
	assert.Nil(t, s.SelectedShop, "marker clicks are ignored while adding")

	s = s.Route(service.MapClick{At: domain.Coordinate{Latitude: 1, Longitude: 2}})
	s = s.Route(service.MapClick{At: domain.Coordinate{Latitude: 3, Longitude: 4}})
	require.NotNil(t, s.PendingLocation)
	assert.Equal(t, domain.Coordinate{Latitude: 3, Longitude: 4}, *s.PendingLocation)
}

func TestState_Route_IgnoredWhileLoading(t *testing.T) {
	s := service.InitialState().Route(service.MarkerClick{Shop: shopA()})
	assert.Nil(t, s.SelectedShop)
}

func TestState_ToggleAddMode(t *testing.T) {
	s := loadedState(shopA()).Route(service.MarkerClick{Shop: shopA()})

	s = s.ToggleAddMode()
	assert.Equal(t, service.ModeAddingShop, s.Mode)
	assert.Nil(t, s.SelectedShop)

	s = s.Route(service.MapClick{At: domain.Coordinate{Latitude: 1, Longitude: 2}})
	s = s.ToggleAddMode()
	assert.Equal(t, service.ModeBrowsing, s.Mode)
	assert.Nil(t, s.PendingLocation)
}

func TestState_ModeInvariants(t *testing.T) {
	// Walk every sequence of up to four events and check both mode
	// invariants after each step.
	events := []func(service.State) service.State{
		func(s service.State) service.State { return s.ToggleAddMode() },
		func(s service.State) service.State { return s.Route(service.MarkerClick{Shop: shopA()}) },
		func(s service.State) service.State {
			return s.Route(service.MapClick{At: domain.Coordinate{Latitude: 5, Longitude: 5}})
		},
		func(s service.State) service.State { return s.CancelRegistration() },
		func(s service.State) service.State { return s.Registered() },
	}
	var walk func(s service.State, depth int)
	walk = func(s service.State, depth int) {
		if s.Mode == service.ModeAddingShop {
			require.Nil(t, s.SelectedShop)
		}
		if s.Mode == service.ModeBrowsing {
			require.Nil(t, s.PendingLocation)
		}
		if depth == 0 {
			return
		}
		for _, ev := range events {
			walk(ev(s), depth-1)
		}
	}
	walk(loadedState(shopA()), 4)
}

func TestState_Loaded_ErrorKeepsList(t *testing.T) {
	s := loadedState(shopA())

	s = s.Loaded(nil, errDown)
	assert.Equal(t, service.MsgLoadShopsFailed, s.LoadError)
	assert.Len(t, s.Shops, 1)
	assert.False(t, s.Loading)

	s = s.Loaded([]domain.Shop{shopA(), shopB()}, nil)
	assert.Empty(t, s.LoadError)
	assert.Len(t, s.Shops, 2)
}

func TestState_Registered(t *testing.T) {
	s := loadedState().ToggleAddMode().
		Route(service.MapClick{At: domain.Coordinate{Latitude: 1, Longitude: 1}}).
		Registered()

	assert.Equal(t, service.ModeBrowsing, s.Mode)
	assert.Nil(t, s.PendingLocation)
}

func TestState_CancelRegistration_KeepsMode(t *testing.T) {
	s := loadedState().ToggleAddMode().
		Route(service.MapClick{At: domain.Coordinate{Latitude: 1, Longitude: 1}}).
		CancelRegistration()

	assert.Equal(t, service.ModeAddingShop, s.Mode)
	assert.Nil(t, s.PendingLocation)
}

func TestState_Clone_IsDeep(t *testing.T) {
	s := loadedState(shopA()).Route(service.MarkerClick{Shop: shopA()})

	c := s.Clone()
	c.Shops[0].Name = "changed"
	c.SelectedShop.Name = "changed"

	assert.Equal(t, "Ramen Ichiban", s.Shops[0].Name)
	assert.Equal(t, "Ramen Ichiban", s.SelectedShop.Name)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "browsing", service.ModeBrowsing.String())
	assert.Equal(t, "adding-shop", service.ModeAddingShop.String())
}
