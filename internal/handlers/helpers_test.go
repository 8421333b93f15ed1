package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sielo-candles/storefront/internal/catalog"
	"github.com/sielo-candles/storefront/internal/content"
	"github.com/sielo-candles/storefront/internal/services"
	"github.com/sielo-candles/storefront/internal/storage"
)

type testEnv struct {
	router chi.Router
	store  *storage.MemoryStore
	carts  services.CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	store := storage.NewMemoryStore()

	carts, err := services.NewCartService(services.CartServiceDeps{
		Store:   store,
		Catalog: cat,
	})
	if err != nil {
		t.Fatalf("NewCartService: %v", err)
	}

	pricer, err := services.NewPricingEngine(services.PricingEngineDeps{Catalog: cat})
	if err != nil {
		t.Fatalf("NewPricingEngine: %v", err)
	}

	crossSell, err := services.NewCrossSellSelector(cat)
	if err != nil {
		t.Fatalf("NewCrossSellSelector: %v", err)
	}

	finder, err := services.NewFinder(cat)
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}

	checkout, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Carts:  carts,
		Pricer: pricer,
		Store:  store,
	})
	if err != nil {
		t.Fatalf("NewCheckoutService: %v", err)
	}

	prefs, err := services.NewPreferencesService(store)
	if err != nil {
		t.Fatalf("NewPreferencesService: %v", err)
	}

	library, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}

	router := NewRouter(
		WithCatalogRoutes(NewCatalogHandlers(cat, carts, crossSell, finder).Routes),
		WithCartRoutes(NewCartHandlers(carts, cat, pricer).Routes),
		WithCheckoutRoutes(NewCheckoutHandlers(checkout).Routes),
		WithGuideRoutes(NewGuideHandlers(library).Routes),
		WithPreferenceRoutes(NewPreferenceHandlers(prefs).Routes),
	)

	return &testEnv{router: router, store: store, carts: carts}
}

func (e *testEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "203.0.113.10:44321"
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func wantErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	decodeJSON(t, rec, &payload)
	if payload.Error != code {
		t.Fatalf("error code = %q, want %q", payload.Error, code)
	}
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return e.do(t, http.MethodGet, path, nil)
}
