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

const maxFinderBodySize = 4 * 1024

// CrossSellPicker suggests the companion product for the current cart.
type CrossSellPicker interface {
	Pick(cart domain.Cart) (domain.Product, bool)
}

// Recommender resolves a finder questionnaire to a product.
type Recommender interface {
	Recommend(sel domain.FinderSelection) (domain.Product, bool)
}

// CatalogHandlers exposes the product listing, detail, cross-sell, and finder endpoints.
type CatalogHandlers struct {
	catalog   services.ProductResolver
	carts     services.CartService
	crossSell CrossSellPicker
	finder    Recommender
}

// NewCatalogHandlers constructs the catalog handler set. CrossSell and finder
// are optional; their endpoints answer 404 when unset.
func NewCatalogHandlers(catalog services.ProductResolver, carts services.CartService, crossSell CrossSellPicker, finder Recommender) *CatalogHandlers {
	return &CatalogHandlers{
		catalog:   catalog,
		carts:     carts,
		crossSell: crossSell,
		finder:    finder,
	}
}

// Routes wires the catalog endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/products", h.listProducts)
	r.Get("/products/{productID}", h.getProduct)
	if h.crossSell != nil {
		r.Get("/products/cross-sell", h.getCrossSell)
	}
	if h.finder != nil {
		r.Post("/finder/recommendation", h.recommend)
	}
}

type productPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	PriceLabel  string   `json:"priceLabel"`
	Family      string   `json:"family"`
	Size        string   `json:"size,omitempty"`
	Burn        string   `json:"burn,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Description string   `json:"description,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Images      []string `json:"images,omitempty"`
	Pack        string   `json:"pack,omitempty"`
}

func buildProductPayload(p domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		PriceLabel:  format.EUR(p.Price),
		Family:      string(p.Family),
		Size:        p.Size,
		Burn:        p.Burn,
		Notes:       p.Notes,
		Description: p.Description,
		Tag:         p.Tag,
		SKU:         p.SKU,
		Images:      p.Images,
		Pack:        p.Pack,
	}
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.List()
	items := make([]productPayload, 0, len(products))
	for _, p := range products {
		items = append(items, buildProductPayload(p))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": items})
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "productID"))
	product, ok := h.catalog.Get(id)
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
		return
	}
	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *CatalogHandlers) getCrossSell(w http.ResponseWriter, r *http.Request) {
	var cart domain.Cart
	if h.carts != nil {
		cart = h.carts.Cart()
	}
	product, ok := h.crossSell.Pick(cart)
	if !ok {
		writeJSONResponse(w, http.StatusOK, map[string]any{"item": nil})
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"item": buildProductPayload(product)})
}

func (h *CatalogHandlers) recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel := domain.DefaultFinderSelection()
	body, err := readLimitedBody(r, maxFinderBodySize)
	switch {
	case err == nil:
		if err := json.Unmarshal(body, &sel); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
			return
		}
	case errors.Is(err, errEmptyBody):
		// Empty submission falls back to the default selection.
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	product, ok := h.finder.Recommend(sel)
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("recommendation_unavailable", "no product matches the selection", http.StatusNotFound))
		return
	}
	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}
