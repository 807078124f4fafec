package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

func samplePurchase() *model.Purchase {
	return &model.Purchase{
		InvoiceNumber: "INV-20261018-abcd1234",
		EventDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		DeliveryFee:   decimal.NewFromInt(100000),
		Items: []model.PurchaseItem{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(250000)},
		},
	}
}

func TestOrderPlacedPostsMessage(t *testing.T) {
	var got orderPlacedMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := n.OrderPlaced(context.Background(), samplePurchase(), "https://pay.example/ref-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Invoice != "INV-20261018-abcd1234" || got.EventDate != "2026-10-20" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if got.Total != "600000.00" || got.PaymentURL != "https://pay.example/ref-1" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestOrderPlacedErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := n.OrderPlaced(context.Background(), samplePurchase(), ""); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestOrderPlacedNoEndpointIsNoop(t *testing.T) {
	n := NewWebhookNotifier("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := n.OrderPlaced(context.Background(), samplePurchase(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
