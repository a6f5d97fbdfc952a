package service

import (
	"github.com/pkordes/lunchmap/internal/domain"
)

// Mode is the top-level interaction mode of the map.
type Mode int

const (
	// ModeBrowsing routes marker clicks to shop selection. Initial mode.
	ModeBrowsing Mode = iota
	// ModeAddingShop routes map clicks to the pending location of a new shop.
	ModeAddingShop
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeAddingShop:
		return "adding-shop"
	default:
		return "unknown"
	}
}

// MapEvent is an event emitted by the map surface: MarkerClick or MapClick.
type MapEvent interface {
	isMapEvent()
}

// MarkerClick is emitted when the user clicks an existing shop's marker.
type MarkerClick struct {
	Shop domain.Shop
}

// MapClick is emitted when the user clicks an empty point of the map.
type MapClick struct {
	At domain.Coordinate
}

func (MarkerClick) isMapEvent() {}
func (MapClick) isMapEvent()    {}

// State is the canonical application state owned by the Coordinator.
// Invariants, kept by every transition below:
//   - SelectedShop is nil while Mode is ModeAddingShop.
//   - PendingLocation is nil while Mode is ModeBrowsing.
//
// Transitions are pure: they return a new State and never touch the network.
type State struct {
	Shops           []domain.Shop
	SelectedShop    *domain.Shop
	Mode            Mode
	PendingLocation *domain.Coordinate
	LoadError       string
	// Loading is true until the initial shop list fetch settles; map events
	// are ignored meanwhile.
	Loading bool
}

// InitialState is the state before the shop list has been fetched.
func InitialState() State {
	return State{Shops: []domain.Shop{}, Mode: ModeBrowsing, Loading: true}
}

// ToggleAddMode flips between Browsing and AddingShop. Entering add mode
// clears the selection; either direction clears the pending location.
func (s State) ToggleAddMode() State {
	switch s.Mode {
	case ModeBrowsing:
		s.Mode = ModeAddingShop
		s.SelectedShop = nil
	default:
		s.Mode = ModeBrowsing
	}
	s.PendingLocation = nil
	return s
}

// Route applies a map event according to the current mode. It is the only
// place click routing is decided:
//   - Browsing: MarkerClick selects the shop, MapClick is ignored.
//   - AddingShop: MapClick sets (or overwrites) the pending location,
//     MarkerClick is ignored.
//
// Every event is ignored while the initial load is in progress.
func (s State) Route(ev MapEvent) State {
	if s.Loading {
		return s
	}
	switch s.Mode {
	case ModeBrowsing:
		if e, ok := ev.(MarkerClick); ok {
			shop := e.Shop
			s.SelectedShop = &shop
		}
	case ModeAddingShop:
		if e, ok := ev.(MapClick); ok {
			at := e.At
			s.PendingLocation = &at
		}
	}
	return s
}

// Loaded applies the result of a shop list fetch. On success the list is
// replaced and the banner cleared; on failure the current list is kept and
// the banner set. Either way the initial loading phase is over.
func (s State) Loaded(shops []domain.Shop, err error) State {
	s.Loading = false
	if err != nil {
		s.LoadError = MsgLoadShopsFailed
		return s
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	s.Shops = shops
	s.LoadError = ""
	return s
}

// Registered is the transition after a shop was created: the pending
// location is consumed and the map returns to browsing.
func (s State) Registered() State {
	s.PendingLocation = nil
	s.Mode = ModeBrowsing
	return s
}

// CancelRegistration drops the pending location but stays in the current
// mode, so the user can pick another point right away.
func (s State) CancelRegistration() State {
	s.PendingLocation = nil
	return s
}

// Clone returns a deep copy safe to hand to renderers.
func (s State) Clone() State {
	out := s
	out.Shops = append([]domain.Shop(nil), s.Shops...)
	if out.Shops == nil {
		out.Shops = []domain.Shop{}
	}
	if s.SelectedShop != nil {
		shop := *s.SelectedShop
		out.SelectedShop = &shop
	}
	if s.PendingLocation != nil {
		at := *s.PendingLocation
		out.PendingLocation = &at
	}
	return out
}

// selectedID returns the ID of the selected shop, or "" when none is.
func (s State) selectedID() string {
	if s.SelectedShop == nil {
		return ""
	}
	return s.SelectedShop.ID
}
