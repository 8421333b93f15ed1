package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sielo-candles/storefront/internal/domain"
	"github.com/sielo-candles/storefront/internal/format"
	"github.com/sielo-candles/storefront/internal/platform/httpx"
	"github.com/sielo-candles/storefront/internal/services"
)

const (
	maxCheckoutRequestBody = 8 * 1024

	checkoutRateLimit  = 10
	checkoutRateWindow = time.Minute
)

// CheckoutHandlers exposes order submission and the last order snapshot.
type CheckoutHandlers struct {
	checkout services.CheckoutService
	limiter  rateLimiter
}

// NewCheckoutHandlers constructs checkout handlers with a per-client
// submission rate limit.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{
		checkout: checkout,
		limiter:  newWindowLimiter(checkoutRateLimit, checkoutRateWindow, nil),
	}
}

// Routes registers checkout endpoints under the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/checkout", h.submit)
	r.Get("/checkout/last-order", h.lastOrder)
}

type submitOrderRequest struct {
	Email         string `json:"email"`
	TermsAccepted bool   `json:"termsAccepted"`
	Country       string `json:"country"`
}

type orderConfirmationPayload struct {
	OrderID    string  `json:"orderId"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"totalLabel"`
}

func (h *CheckoutHandlers) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "checkout service unavailable", http.StatusServiceUnavailable))
		return
	}

	if h.limiter != nil && !h.limiter.Allow(clientKey(r)) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many checkout attempts, retry shortly", http.StatusTooManyRequests))
		return
	}

	body, err := readLimitedBody(r, maxCheckoutRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req submitOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	confirmation, err := h.checkout.Submit(ctx, services.SubmitOrderCommand{
		Email:         req.Email,
		TermsAccepted: req.TermsAccepted,
		Country:       req.Country,
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, orderConfirmationPayload{
		OrderID:    confirmation.OrderID,
		Total:      confirmation.Total,
		TotalLabel: format.EUR(confirmation.Total),
	})
}

func (h *CheckoutHandlers) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrCheckoutEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("cart_empty", "cannot submit an empty cart", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrCheckoutInvalidEmail):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_email", "a valid email address is required", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrCheckoutTermsNotAccepted):
		httpx.WriteError(ctx, w, httpx.NewError("terms_not_accepted", "terms must be accepted", http.StatusUnprocessableEntity))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("checkout_error", "failed to submit order", http.StatusInternalServerError))
	}
}

type lastOrderPayload struct {
	OrderID   string            `json:"orderId"`
	CreatedAt string            `json:"createdAt"`
	Email     string            `json:"email"`
	Items     []cartLinePayload `json:"items"`
	Totals    totalsPayload     `json:"totals"`
}

func (h *CheckoutHandlers) lastOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "checkout service unavailable", http.StatusServiceUnavailable))
		return
	}

	order, ok := h.checkout.LastOrder()
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "no order has been recorded", http.StatusNotFound))
		return
	}
	writeJSONResponse(w, http.StatusOK, buildLastOrderPayload(order))
}

func buildLastOrderPayload(order domain.Order) lastOrderPayload {
	items := make([]cartLinePayload, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, cartLinePayload{ID: line.ProductID, Quantity: line.Quantity})
	}
	return lastOrderPayload{
		OrderID:   order.ID,
		CreatedAt: formatTime(order.CreatedAt),
		Email:     order.Email,
		Items:     items,
		Totals:    buildTotalsPayload(order.Totals),
	}
}

func clientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
