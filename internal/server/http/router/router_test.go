package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/server/http/handlers"
	testhelpers "github.com/andinaft/bakeryd/internal/test"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(&testhelpers.BakeryFacadeStub{}, testhelpers.PingerStub{}, logger)
}

func TestSetupRoutes(t *testing.T) {
	engine := newEngine()

	body, _ := json.Marshal(map[string]string{"login": "alice", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newEngine()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/calendar/close"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	engine := newEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public calendar, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]string{"order_id": "ref-1", "status_code": "200", "gross_amount": "1.00", "transaction_status": "settlement", "signature_key": "sig"})
	req = httptest.NewRequest(http.MethodPost, "/api/payments/notifications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for webhook, got %d", resp.Code)
	}
}

var _ handlers.BakeryFacade = (*testhelpers.BakeryFacadeStub)(nil)
