package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/healthz")
	wantStatus(t, rec, http.StatusOK)

	var payload struct {
		Status string `json:"status"`
	}
	decodeJSON(t, rec, &payload)
	if payload.Status != "ok" {
		t.Fatalf("healthz status = %q", payload.Status)
	}

	rec = env.get(t, "/readyz")
	wantStatus(t, rec, http.StatusOK)
}

func TestReadyzUnavailable(t *testing.T) {
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(func() bool { return false })))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/v1/does-not-exist")
	wantStatus(t, rec, http.StatusNotFound)
	wantErrorCode(t, rec, "route_not_found")
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/v1/products", nil)
	wantStatus(t, rec, http.StatusMethodNotAllowed)
	wantErrorCode(t, rec, "method_not_allowed")
}

func TestRouteGroupsOptional(t *testing.T) {
	// A router without registrars still serves health and JSON errors.
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
