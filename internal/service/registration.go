package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/lunchmap/internal/domain"
)

// ShopDraft holds the user-entered fields of the new-shop form.
// There is no coordinate field: the location comes only from a map click
// and is supplied by the Coordinator at submit time.
type ShopDraft struct {
	Name    string
	Address string
	Phone   string
	URL     string
}

// ShopRegistration is the new-shop form: a draft, an inline message and a
// single-flight submission guard.
type ShopRegistration struct {
	client ShopClient
	log    *slog.Logger
	flight *flight

	mu      sync.Mutex
	draft   ShopDraft
	message string
}

// NewShopRegistration constructs an empty registration form.
func NewShopRegistration(c ShopClient, logger *slog.Logger) *ShopRegistration {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopRegistration{client: c, log: logger, flight: newFlight()}
}

// Draft returns a copy of the current draft.
func (r *ShopRegistration) Draft() ShopDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Edit applies fn to the draft under the form's lock.
func (r *ShopRegistration) Edit(fn func(d *ShopDraft)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.draft)
}

// Message is the inline message shown on the form ("" when none).
func (r *ShopRegistration) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Submitting reports whether a submission is in flight.
func (r *ShopRegistration) Submitting() bool {
	return r.flight.inFlight()
}

// Reset clears the draft and the inline message.
func (r *ShopRegistration) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = ShopDraft{}
	r.message = ""
}

func (r *ShopRegistration) setMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.message = msg
}

// Submit validates the draft and creates the shop at the given coordinate.
//   - Returns ErrSubmitInFlight if another submission has not finished.
//   - Returns domain.ErrValidation (and sets the inline message) if the name
//     is blank; the API is not called.
//   - On API failure sets MsgRegisterFailed and keeps the draft for a retry.
//   - On success resets the form and returns the created shop.
func (r *ShopRegistration) Submit(ctx context.Context, at domain.Coordinate) (domain.Shop, error) {
	release, ok := r.flight.begin()
	if !ok {
		return domain.Shop{}, fmt.Errorf("service.ShopRegistration.Submit: %w", ErrSubmitInFlight)
	}
	defer release()

	d := r.Draft()
	in := domain.ShopInput{
		Name:      d.Name,
		Address:   d.Address,
		Phone:     d.Phone,
		URL:       d.URL,
		Latitude:  at.Latitude,
		Longitude: at.Longitude,
	}
	if err := in.Validate(); err != nil {
		r.setMessage(domain.ValidationMessage(err))
		return domain.Shop{}, fmt.Errorf("service.ShopRegistration.Submit: %w", err)
	}
	r.setMessage("")

	shop, err := r.client.CreateShop(ctx, in)
	if err != nil {
		r.log.WarnContext(ctx, "shop registration failed", "name", in.Name, "error", err)
		r.setMessage(MsgRegisterFailed)
		return domain.Shop{}, fmt.Errorf("service.ShopRegistration.Submit: %w", err)
	}

	r.log.InfoContext(ctx, "shop registered", "shop_id", shop.ID, "name", shop.Name)
	r.Reset()
	return shop, nil
}
