package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sielo-candles/storefront/internal/domain"
	"github.com/sielo-candles/storefront/internal/format"
	"github.com/sielo-candles/storefront/internal/platform/httpx"
	"github.com/sielo-candles/storefront/internal/services"
)

const maxCartBodySize = 16 * 1024

// Pricer is the totals dependency consumed by the cart endpoints.
type Pricer interface {
	ComputeTotals(cart domain.Cart, countryCode string) domain.TotalsBreakdown
	FreeShippingProgress(totals domain.TotalsBreakdown) domain.FreeShippingProgress
}

// CartHandlers exposes the shopper's cart endpoints.
type CartHandlers struct {
	carts   services.CartService
	catalog services.ProductResolver
	pricer  Pricer
}

// NewCartHandlers constructs handlers over the cart service and pricing engine.
func NewCartHandlers(carts services.CartService, catalog services.ProductResolver, pricer Pricer) *CartHandlers {
	return &CartHandlers{
		carts:   carts,
		catalog: catalog,
		pricer:  pricer,
	}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/cart", h.getCart)
	r.Delete("/cart", h.clearCart)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items/{productID}", h.setQuantity)
	r.Delete("/cart/items/{productID}", h.removeItem)
	r.Get("/cart/totals", h.getTotals)
	r.Get("/cart/free-shipping", h.getFreeShippingProgress)
}

type cartLinePayload struct {
	ID       string          `json:"id"`
	Quantity int             `json:"qty"`
	Product  *productPayload `json:"product,omitempty"`
}

type cartPayload struct {
	Items []cartLinePayload `json:"items"`
	Count int               `json:"count"`
}

func (h *CartHandlers) buildCartPayload(cart domain.Cart) cartPayload {
	items := make([]cartLinePayload, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		entry := cartLinePayload{ID: line.ProductID, Quantity: line.Quantity}
		if h.catalog != nil {
			if product, ok := h.catalog.Get(line.ProductID); ok {
				payload := buildProductPayload(product)
				entry.Product = &payload
			}
		}
		items = append(items, entry)
	}
	return cartPayload{Items: items, Count: cart.Count()}
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.buildCartPayload(h.carts.Cart()))
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.buildCartPayload(h.carts.Clear()))
}

type addItemRequest struct {
	ID       string `json:"id"`
	Quantity *int   `json:"qty"`
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req addItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "id is required", http.StatusBadRequest))
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	writeJSONResponse(w, http.StatusOK, h.buildCartPayload(h.carts.Add(id, qty)))
}

type setQuantityRequest struct {
	Quantity int `json:"qty"`
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "productID"))

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req setQuantityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	writeJSONResponse(w, http.StatusOK, h.buildCartPayload(h.carts.SetQuantity(id, req.Quantity)))
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "productID"))
	writeJSONResponse(w, http.StatusOK, h.buildCartPayload(h.carts.Remove(id)))
}

type totalsPayload struct {
	Subtotal      float64 `json:"subtotal"`
	Shipping      float64 `json:"shipping"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	SubtotalLabel string  `json:"subtotalLabel"`
	ShippingLabel string  `json:"shippingLabel"`
	TaxLabel      string  `json:"taxLabel"`
	TotalLabel    string  `json:"totalLabel"`
}

func buildTotalsPayload(totals domain.TotalsBreakdown) totalsPayload {
	return totalsPayload{
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Tax:           totals.Tax,
		Total:         totals.Total,
		SubtotalLabel: format.EUR(totals.Subtotal),
		ShippingLabel: format.EUR(totals.Shipping),
		TaxLabel:      format.EUR(totals.Tax),
		TotalLabel:    format.EUR(totals.Total),
	}
}

func (h *CartHandlers) getTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.pricer == nil {
		httpx.WriteError(ctx, w, httpx.NewError("pricing_unavailable", "pricing engine unavailable", http.StatusServiceUnavailable))
		return
	}
	country := r.URL.Query().Get("country")
	totals := h.pricer.ComputeTotals(h.carts.Cart(), country)
	writeJSONResponse(w, http.StatusOK, buildTotalsPayload(totals))
}

func (h *CartHandlers) getFreeShippingProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.pricer == nil {
		httpx.WriteError(ctx, w, httpx.NewError("pricing_unavailable", "pricing engine unavailable", http.StatusServiceUnavailable))
		return
	}
	country := r.URL.Query().Get("country")
	totals := h.pricer.ComputeTotals(h.carts.Cart(), country)
	progress := h.pricer.FreeShippingProgress(totals)
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"percent":        progress.Percent,
		"remaining":      progress.Remaining,
		"remainingLabel": format.EUR(progress.Remaining),
	})
}
