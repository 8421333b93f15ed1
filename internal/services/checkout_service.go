package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sielo-candles/storefront/internal/domain"
	"github.com/sielo-candles/storefront/internal/storage"
)

const orderNumberPrefix = "SC"

var (
	errCheckoutCartRequired   = errors.New("checkout service: cart service is required")
	errCheckoutPricerRequired = errors.New("checkout service: pricer is required")
	errCheckoutStoreRequired  = errors.New("checkout service: store is required")

	// ErrCheckoutEmptyCart rejects submissions against an empty cart.
	ErrCheckoutEmptyCart = errors.New("checkout: cart is empty")
	// ErrCheckoutInvalidEmail rejects submissions without a usable email.
	ErrCheckoutInvalidEmail = errors.New("checkout: invalid email")
	// ErrCheckoutTermsNotAccepted rejects submissions without consent.
	ErrCheckoutTermsNotAccepted = errors.New("checkout: terms not accepted")
)

// CheckoutServiceDeps wires the cart, pricing and persistence dependencies.
// Clock and the token generator are injectable for deterministic tests.
type CheckoutServiceDeps struct {
	Carts       CartService
	Pricer      TotalsCalculator
	Store       storage.Store
	Clock       func() time.Time
	Logger      EventLogger
	IDGenerator func() string
	OrderToken  func() string
}

type checkoutService struct {
	carts  CartService
	pricer TotalsCalculator
	store  storage.Store
	now    func() time.Time
	logger EventLogger
	newID  func() string
	token  func() string
}

// NewCheckoutService constructs a CheckoutService enforcing dependency
// validation.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Carts == nil {
		return nil, errCheckoutCartRequired
	}
	if deps.Pricer == nil {
		return nil, errCheckoutPricerRequired
	}
	if deps.Store == nil {
		return nil, errCheckoutStoreRequired
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	token := deps.OrderToken
	if token == nil {
		token = randomOrderToken
	}

	return &checkoutService{
		carts:  deps.Carts,
		pricer: deps.Pricer,
		store:  deps.Store,
		now: func() time.Time {
			return clock().UTC()
		},
		logger: logger,
		newID:  idGen,
		token:  token,
	}, nil
}

// Submit validates the form payload, snapshots totals, persists the order and
// empties the cart. Rejections leave every piece of state unchanged.
func (s *checkoutService) Submit(ctx context.Context, cmd SubmitOrderCommand) (OrderConfirmation, error) {
	cart := s.carts.Cart()
	if cart.IsEmpty() {
		return OrderConfirmation{}, ErrCheckoutEmptyCart
	}

	email := strings.TrimSpace(cmd.Email)
	if email == "" || !strings.Contains(email, "@") {
		return OrderConfirmation{}, ErrCheckoutInvalidEmail
	}
	if !cmd.TermsAccepted {
		return OrderConfirmation{}, ErrCheckoutTermsNotAccepted
	}

	now := s.now()
	totals := s.pricer.ComputeTotals(cart, cmd.Country)

	order := domain.Order{
		ID:        s.orderNumber(now),
		RecordID:  s.newID(),
		CreatedAt: now,
		Email:     email,
		Items:     cart.Lines,
		Totals:    totals,
	}

	raw, err := json.Marshal(order)
	if err != nil {
		s.logger(ctx, "checkout.snapshot_failed", map[string]any{
			"orderID": order.ID,
			"error":   err.Error(),
		})
	} else {
		s.store.Set(storage.KeyLastOrderSnapshot, string(raw))
	}

	s.carts.Clear()

	s.logger(ctx, "checkout.order_recorded", map[string]any{
		"orderID": order.ID,
		"total":   totals.Total,
		"country": strings.ToUpper(strings.TrimSpace(cmd.Country)),
	})

	return OrderConfirmation{OrderID: order.ID, Total: totals.Total}, nil
}

// LastOrder reads the persisted snapshot, tolerating a missing or malformed
// value.
func (s *checkoutService) LastOrder() (domain.Order, bool) {
	raw, ok := s.store.Get(storage.KeyLastOrderSnapshot)
	if !ok {
		return domain.Order{}, false
	}
	var order domain.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil || order.ID == "" {
		return domain.Order{}, false
	}
	return order, true
}

// orderNumber builds the public identifier: SC-<year>-<6 uppercase hex>.
func (s *checkoutService) orderNumber(now time.Time) string {
	token := strings.ToUpper(strings.TrimSpace(s.token()))
	if len(token) > 6 {
		token = token[:6]
	}
	for len(token) < 6 {
		token += "0"
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, now.Year(), token)
}

func randomOrderToken() string {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return strings.ToUpper(hex.EncodeToString(buf[:]))
}
