package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/lunchmap/internal/domain"
)

// Coordinator owns the canonical State and routes every map event. It
// delegates form submissions to the ShopRegistration and ReviewWorkflow it
// owns and refreshes its own state from their outcomes.
//
// State changes happen under mu; network calls never do.
type Coordinator struct {
	shops        ShopClient
	log          *slog.Logger
	registration *ShopRegistration
	reviews      *ReviewWorkflow

	mu          sync.Mutex
	state       State
	initialized bool
}

// NewCoordinator wires the Coordinator and both workflows to api.
func NewCoordinator(api API, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		shops:        api,
		log:          logger,
		registration: NewShopRegistration(api, logger),
		state:        InitialState(),
	}
	c.reviews = NewReviewWorkflow(api, logger, c.OnDataChanged)
	return c
}

// Registration returns the new-shop form.
func (c *Coordinator) Registration() *ShopRegistration {
	return c.registration
}

// Reviews returns the review panel of the selected shop.
func (c *Coordinator) Reviews() *ReviewWorkflow {
	return c.reviews
}

// Snapshot returns a deep copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Initialize fetches the shop list once. A failure is reported through the
// LoadError banner and also returned. Later calls are no-ops.
func (c *Coordinator) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = true
	c.mu.Unlock()

	shops, err := c.shops.ListShops(ctx)

	c.mu.Lock()
	c.state = c.state.Loaded(shops, err)
	c.mu.Unlock()

	if err != nil {
		c.log.WarnContext(ctx, "load shops failed", "error", err)
		return fmt.Errorf("service.Coordinator.Initialize: %w", err)
	}
	c.log.InfoContext(ctx, "shops loaded", "count", len(shops))
	return nil
}

// ToggleAddMode switches between browsing and adding a shop.
func (c *Coordinator) ToggleAddMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	c.state = c.state.ToggleAddMode()
	c.afterTransition(prev, c.state)
	c.log.Debug("mode toggled", "mode", c.state.Mode.String())
	return c.state.Mode
}

// HandleMapEvent routes ev according to the current mode. A selection
// change loads the reviews of the newly selected shop before returning.
func (c *Coordinator) HandleMapEvent(ctx context.Context, ev MapEvent) error {
	c.mu.Lock()
	prev := c.state
	c.state = c.state.Route(ev)
	t, fetch := c.afterTransition(prev, c.state)
	c.mu.Unlock()

	if !fetch {
		return nil
	}
	return c.reviews.load(ctx, t)
}

// OnMarkerClick is HandleMapEvent(ctx, MarkerClick{Shop: shop}).
func (c *Coordinator) OnMarkerClick(ctx context.Context, shop domain.Shop) error {
	return c.HandleMapEvent(ctx, MarkerClick{Shop: shop})
}

// OnMapClick is HandleMapEvent(ctx, MapClick{At: at}).
func (c *Coordinator) OnMapClick(ctx context.Context, at domain.Coordinate) error {
	return c.HandleMapEvent(ctx, MapClick{At: at})
}

// afterTransition propagates a state change to the workflows. It must be
// called with mu held and never blocks on the network; the returned ticket,
// if any, is loaded by the caller after releasing mu.
func (c *Coordinator) afterTransition(prev, next State) (fetchTicket, bool) {
	if prev.PendingLocation != nil && next.PendingLocation == nil {
		c.registration.Reset()
	}
	if prev.selectedID() == next.selectedID() {
		return fetchTicket{}, false
	}
	return c.reviews.begin(next.SelectedShop)
}

// SubmitShop submits the registration form at the pending location and, on
// success, runs OnShopRegistered.
func (c *Coordinator) SubmitShop(ctx context.Context) (domain.Shop, error) {
	c.mu.Lock()
	mode, pending := c.state.Mode, c.state.PendingLocation
	c.mu.Unlock()

	if mode != ModeAddingShop || pending == nil {
		c.registration.setMessage(MsgSelectLocation)
		return domain.Shop{}, fmt.Errorf("service.Coordinator.SubmitShop: %w: %s", domain.ErrValidation, MsgSelectLocation)
	}

	shop, err := c.registration.Submit(ctx, *pending)
	if err != nil {
		return domain.Shop{}, fmt.Errorf("service.Coordinator.SubmitShop: %w", err)
	}
	// A failed re-fetch does not undo the registration; it shows as LoadError.
	_ = c.OnShopRegistered(ctx, shop)
	return shop, nil
}

// OnShopRegistered re-fetches the shop list and returns the map to browsing.
func (c *Coordinator) OnShopRegistered(ctx context.Context, shop domain.Shop) error {
	shops, err := c.shops.ListShops(ctx)

	c.mu.Lock()
	prev := c.state
	c.state = c.state.Loaded(shops, err).Registered()
	c.afterTransition(prev, c.state)
	c.mu.Unlock()

	if err != nil {
		c.log.WarnContext(ctx, "reload shops after registration failed", "shop_id", shop.ID, "error", err)
		return fmt.Errorf("service.Coordinator.OnShopRegistered: %w", err)
	}
	return nil
}

// OnRegistrationCancelled drops the pending location and the draft. The
// mode is unchanged.
func (c *Coordinator) OnRegistrationCancelled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.state
	c.state = c.state.CancelRegistration()
	c.afterTransition(prev, c.state)
	c.registration.Reset()
}

// SubmitReview submits the review form for the selected shop.
func (c *Coordinator) SubmitReview(ctx context.Context) (domain.Review, error) {
	review, err := c.reviews.Submit(ctx)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.Coordinator.SubmitReview: %w", err)
	}
	return review, nil
}

// OnDataChanged is called after a review was added.
func (c *Coordinator) OnDataChanged() {
	c.log.Debug("data changed")
}
