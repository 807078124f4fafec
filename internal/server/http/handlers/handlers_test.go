package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/server/http/dto"
	"github.com/andinaft/bakeryd/internal/server/http/middleware"
	testhelpers "github.com/andinaft/bakeryd/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	route := path
	if i := strings.Index(route, "?"); i >= 0 {
		route = route[:i]
	}
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asActor(actor model.Actor) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ActorContextKey, actor)
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func TestCurrentActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentActor(c); got.AccountID != 0 {
		t.Fatalf("expected zero actor when not set, got %+v", got)
	}

	c.Set(middleware.ActorContextKey, model.Actor{AccountID: 42, Role: model.RoleAdmin})
	if got := CurrentActor(c); got.AccountID != 42 || got.Role != model.RoleAdmin {
		t.Fatalf("unexpected actor %+v", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Login: "alice", Password: "secret", Name: "Alice", Phone: "+62811111111"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, login, password, name, phone string) (string, error) {
		if login != "alice" || password != "secret" || name != "Alice" {
			t.Fatalf("unexpected registration payload: %q %q %q", login, password, name)
		}
		return "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "bakeryd_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named bakeryd_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "alice", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	body, _ := json.Marshal(dto.AuthRequest{Login: "alice", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	event := time.Now().AddDate(0, 0, 10)
	facade := testhelpers.OrderFacadeStub{PlaceFn: func(_ context.Context, actor model.Actor, req model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error) {
		if actor.AccountID != 7 {
			t.Fatalf("unexpected actor %+v", actor)
		}
		if len(req.Items) != 1 || req.Items[0].VariantID != 1 || req.Items[0].Quantity != 2 {
			t.Fatalf("unexpected items %+v", req.Items)
		}
		purchase := &model.Purchase{
			ID:            1,
			AccountID:     actor.AccountID,
			InvoiceNumber: "INV-1",
			EventDate:     model.DateOnly(event),
			DeliveryFee:   decimal.NewFromInt(100000),
			Status:        model.PurchaseStatusWaitingDownPayment,
		}
		tx := &model.Transaction{ID: 1, OrderRef: "ref-1", PaymentURL: "https://pay.example/ref-1", Amount: decimal.NewFromInt(605000)}
		return purchase, tx, nil
	}}

	body, _ := json.Marshal(dto.PlaceOrderRequest{
		EventDate:   event.Format("2006-01-02"),
		DeliveryLat: -6.250,
		DeliveryLon: 106.900,
		Items:       []dto.PlaceOrderItem{{VariantID: 1, Quantity: 2}},
	})
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Place,
		asActor(model.Actor{AccountID: 7, Role: model.RoleCustomer}), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var out dto.PlaceOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Order.InvoiceNumber != "INV-1" || out.Payment.PaymentURL != "https://pay.example/ref-1" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestOrderHandlerPlaceFailures(t *testing.T) {
	event := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	validBody, _ := json.Marshal(dto.PlaceOrderRequest{EventDate: event, Items: []dto.PlaceOrderItem{{VariantID: 1, Quantity: 2}}})

	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "bad date", body: []byte(`{"event_date":"20/10/2026"}`), status: http.StatusBadRequest},
		{name: "validation", err: domainErrors.ErrValidation, body: validBody, status: http.StatusBadRequest},
		{name: "date taken", err: domainErrors.ErrDateUnavailable, body: validBody, status: http.StatusConflict},
		{name: "payment in flight", err: domainErrors.ErrConflict, body: validBody, status: http.StatusConflict},
		{name: "gateway down", err: domainErrors.ErrGateway, body: validBody, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, model.Actor, model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error) {
				return nil, nil, fmt.Errorf("%w: rejected", tt.err)
			}}
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Place,
				asActor(model.Actor{AccountID: 7}), tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, model.Actor) ([]model.Purchase, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List,
		asActor(model.Actor{AccountID: 7}), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/:id", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get,
		asActor(model.Actor{AccountID: 7}), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", resp.Code)
	}
}

func TestOrderHandlerGetForbidden(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(context.Context, model.Actor, int64) (*model.Purchase, error) {
		return nil, domainErrors.ErrForbidden
	}}
	router := gin.New()
	router.GET("/orders/:id", func(c *gin.Context) {
		asActor(model.Actor{AccountID: 55})(c)
		NewOrderHandler(facade).Get(c)
	})
	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestOrderHandlerCancel(t *testing.T) {
	router := gin.New()
	router.POST("/orders/:id/cancel", func(c *gin.Context) {
		asActor(model.Actor{AccountID: 7})(c)
		NewOrderHandler(testhelpers.OrderFacadeStub{}).Cancel(c)
	})
	req := httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var out dto.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != string(model.PurchaseStatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", out.Status)
	}
}

func TestOrderHandlerChangeStatusIllegalTransition(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ChangeFn: func(context.Context, model.Actor, int64, model.PurchaseStatus) (*model.Purchase, error) {
		return nil, fmt.Errorf("%w: backwards", domainErrors.ErrIllegalTransition)
	}}
	router := gin.New()
	router.POST("/orders/:id/status", func(c *gin.Context) {
		asActor(model.Actor{AccountID: 99, Role: model.RoleAdmin})(c)
		NewOrderHandler(facade).ChangeStatus(c)
	})
	body, _ := json.Marshal(dto.StatusChangeRequest{Status: "CONFIRMED"})
	req := httptest.NewRequest(http.MethodPost, "/orders/1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
}

func TestOrderHandlerNextStatuses(t *testing.T) {
	router := gin.New()
	router.GET("/orders/:id/next-statuses", func(c *gin.Context) {
		asActor(model.Actor{AccountID: 7})(c)
		NewOrderHandler(testhelpers.OrderFacadeStub{}).NextStatuses(c)
	})
	req := httptest.NewRequest(http.MethodGet, "/orders/1/next-statuses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var out dto.NextStatusesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Current != string(model.PurchaseStatusPending) || len(out.Next) == 0 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestWebhookHandlerNotify(t *testing.T) {
	facade := &testhelpers.WebhookFacadeStub{}
	payload := dto.PaymentNotificationRequest{
		OrderID:           "ref-1",
		StatusCode:        "200",
		GrossAmount:       "605000.00",
		TransactionStatus: "settlement",
		SignatureKey:      "sig",
		MerchantID:        "M-1001",
	}
	body, _ := json.Marshal(payload)

	resp := performRequest(t, http.MethodPost, "/notifications", NewWebhookHandler(facade).Notify, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if len(facade.Notifications) != 1 || facade.Notifications[0].OrderID != "ref-1" {
		t.Fatalf("unexpected notifications: %+v", facade.Notifications)
	}
}

func TestWebhookHandlerNotifyBadSignature(t *testing.T) {
	facade := &testhelpers.WebhookFacadeStub{ProcessFn: func(context.Context, model.PaymentNotification) error {
		return domainErrors.ErrForbidden
	}}
	body, _ := json.Marshal(dto.PaymentNotificationRequest{OrderID: "ref-1", SignatureKey: "forged"})

	resp := performRequest(t, http.MethodPost, "/notifications", NewWebhookHandler(facade).Notify, nil, body, jsonHeaders())
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestCalendarHandlerListUpcoming(t *testing.T) {
	facade := testhelpers.CalendarFacadeStub{UpcomingFn: func(context.Context, time.Time) ([]model.ClosedDate, error) {
		return []model.ClosedDate{{Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), Type: model.ClosureTypeReserved}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/calendar", NewCalendarHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out []dto.ClosedDateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0].Date != "2026-10-20" || out[0].Type != string(model.ClosureTypeReserved) {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestCalendarHandlerListBadRange(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/calendar?from=yesterday&to=2026-10-20", NewCalendarHandler(testhelpers.CalendarFacadeStub{}).List, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCalendarHandlerClose(t *testing.T) {
	var gotReason string
	facade := testhelpers.CalendarFacadeStub{CloseFn: func(_ context.Context, actor model.Actor, _ time.Time, reason string) error {
		if !actor.IsAdmin() {
			return domainErrors.ErrForbidden
		}
		gotReason = reason
		return nil
	}}
	body, _ := json.Marshal(dto.CloseDateRequest{Date: "2026-11-01", Reason: "holiday"})

	resp := performRequest(t, http.MethodPost, "/calendar/close", NewCalendarHandler(facade).Close,
		asActor(model.Actor{AccountID: 99, Role: model.RoleAdmin}), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotReason != "holiday" {
		t.Fatalf("unexpected reason %q", gotReason)
	}

	resp = performRequest(t, http.MethodPost, "/calendar/close", NewCalendarHandler(facade).Close,
		asActor(model.Actor{AccountID: 7, Role: model.RoleCustomer}), body, jsonHeaders())
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for customer, got %d", resp.Code)
	}
}

func TestCartHandlerAdd(t *testing.T) {
	body, _ := json.Marshal(dto.CartAddRequest{VariantID: 1, Quantity: 2})
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(testhelpers.CartFacadeStub{}).Add,
		asActor(model.Actor{AccountID: 7}), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCartHandlerClear(t *testing.T) {
	resp := performRequest(t, http.MethodDelete, "/cart", NewCartHandler(testhelpers.CartFacadeStub{}).Clear,
		asActor(model.Actor{AccountID: 7}), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(testhelpers.PingerStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(testhelpers.PingerStub{Err: errors.New("pool closed")}).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
