package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// Notifier delivers order confirmations to the customer. Delivery is
// best-effort: callers log failures and never fail the order on them.
type Notifier interface {
	OrderPlaced(ctx context.Context, purchase *model.Purchase, paymentURL string) error
}

// WebhookNotifier posts a small JSON message to an outbound notification
// endpoint (chat bridge, mailer, whatever is configured).
type WebhookNotifier struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookNotifier builds a notifier for the given endpoint. An empty
// endpoint yields a notifier that does nothing.
func NewWebhookNotifier(endpoint string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type orderPlacedMessage struct {
	Invoice    string `json:"invoice"`
	EventDate  string `json:"event_date"`
	Total      string `json:"total"`
	PaymentURL string `json:"payment_url"`
}

// OrderPlaced sends the confirmation message.
func (n *WebhookNotifier) OrderPlaced(ctx context.Context, purchase *model.Purchase, paymentURL string) error {
	if n.endpoint == "" {
		return nil
	}

	msg := orderPlacedMessage{
		Invoice:    purchase.InvoiceNumber,
		EventDate:  purchase.EventDate.Format("2006-01-02"),
		Total:      purchase.Total().StringFixed(2),
		PaymentURL: paymentURL,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %s", resp.Status)
	}
	return nil
}
