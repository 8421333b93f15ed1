package services

import (
	"context"

	"github.com/sielo-candles/storefront/internal/domain"
)

// EventLogger is the logging adapter injected into services. The zap logger
// stays at the wiring layer; services emit structured events through this
// narrower shape.
type EventLogger func(ctx context.Context, event string, fields map[string]any)

// ProductResolver is the read-only catalog dependency consumed by the cart,
// pricing, cross-sell and finder services.
type ProductResolver interface {
	Get(id string) (domain.Product, bool)
	Has(id string) bool
	List() []domain.Product
	Len() int
	ByFamily(family domain.ThermalFamily) (domain.Product, bool)
}

// CartService owns the persistent cart state. Mutating operations are
// synchronous, immediately durable, and never fail: unknown products and
// out-of-range quantities are normalised or ignored rather than reported.
type CartService interface {
	// Cart returns a defensive copy of the current cart.
	Cart() domain.Cart
	// Add merges quantity into an existing line or appends a new one.
	Add(productID string, quantity int) domain.Cart
	// SetQuantity replaces a line quantity; no-op when the line is absent.
	SetQuantity(productID string, quantity int) domain.Cart
	// Remove deletes the line for productID if present.
	Remove(productID string) domain.Cart
	// Clear empties the cart.
	Clear() domain.Cart
	// Count sums all line quantities.
	Count() int
}

// TotalsCalculator is the pricing dependency used by checkout.
type TotalsCalculator interface {
	ComputeTotals(cart domain.Cart, countryCode string) domain.TotalsBreakdown
}

// OrderConfirmation reports the outcome of a successful checkout submission.
type OrderConfirmation struct {
	OrderID string
	Total   float64
}

// SubmitOrderCommand carries the checkout form payload.
type SubmitOrderCommand struct {
	Email         string
	TermsAccepted bool
	Country       string
}

// CheckoutService validates the submission boundary and records orders.
type CheckoutService interface {
	Submit(ctx context.Context, cmd SubmitOrderCommand) (OrderConfirmation, error)
	LastOrder() (domain.Order, bool)
}

// PreferencesService owns theme and announcement persistence.
type PreferencesService interface {
	Theme() string
	SetTheme(mode string) string
	ToggleTheme() string
	AnnouncementDismissed() bool
	DismissAnnouncement()
}
