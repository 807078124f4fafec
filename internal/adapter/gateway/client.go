package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// ErrPermanent marks a gateway rejection that retrying can not fix.
var ErrPermanent = errors.New("gateway rejected request")

const (
	maxAttempts       = 3
	initialBackoff    = 500 * time.Millisecond
	gatewayTimeLayout = "2006-01-02 15:04:05 -0700"
)

// LineItem is one billable line in a gateway charge.
type LineItem struct {
	ID       string
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Customer identifies the paying customer to the gateway.
type Customer struct {
	Name  string
	Phone string
}

// CreateRequest asks the gateway to open a payment page for an order.
type CreateRequest struct {
	OrderRef    string
	GrossAmount decimal.Decimal
	Items       []LineItem
	Customer    Customer
	ExpiresAt   time.Time
}

// CreateResponse carries the gateway reference and the redirect URL the
// customer pays at.
type CreateResponse struct {
	ReferenceID string
	RedirectURL string
}

// Client exposes the payment gateway contract the engine consumes.
type Client interface {
	CreateTransaction(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	FetchStatus(ctx context.Context, orderRef string) (model.TransactionStatus, error)
	Cancel(ctx context.Context, orderRef string) (model.TransactionStatus, error)
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	authHeader string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates HTTP gateway client with default timeout. The server
// key is sent as HTTP basic auth username with an empty password.
func NewHTTPClient(baseURL, serverKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(serverKey+":")),
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type createPayload struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount string `json:"gross_amount"`
	} `json:"transaction_details"`
	ItemDetails []itemPayload `json:"item_details"`
	CustomerDetails struct {
		FirstName string `json:"first_name"`
		Phone     string `json:"phone"`
	} `json:"customer_details"`
	Expiry struct {
		ExpireAt string `json:"expire_at"`
	} `json:"expiry"`
}

type itemPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type createResponse struct {
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
}

type statusResponse struct {
	TransactionStatus string `json:"transaction_status"`
}

// CreateTransaction opens a payment for the order and returns the reference
// and redirect URL.
func (c *HTTPClient) CreateTransaction(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	payload := createPayload{}
	payload.TransactionDetails.OrderID = req.OrderRef
	payload.TransactionDetails.GrossAmount = req.GrossAmount.StringFixed(2)
	payload.CustomerDetails.FirstName = req.Customer.Name
	payload.CustomerDetails.Phone = req.Customer.Phone
	payload.Expiry.ExpireAt = req.ExpiresAt.Format(gatewayTimeLayout)
	for _, item := range req.Items {
		payload.ItemDetails = append(payload.ItemDetails, itemPayload{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var parsed createResponse
	if err := c.do(ctx, http.MethodPost, "/v1/transactions", body, &parsed); err != nil {
		return nil, err
	}
	if parsed.TransactionID == "" || parsed.RedirectURL == "" {
		return nil, fmt.Errorf("%w: incomplete create response", ErrPermanent)
	}
	return &CreateResponse{ReferenceID: parsed.TransactionID, RedirectURL: parsed.RedirectURL}, nil
}

// FetchStatus asks the gateway for the current transaction status.
func (c *HTTPClient) FetchStatus(ctx context.Context, orderRef string) (model.TransactionStatus, error) {
	var parsed statusResponse
	if err := c.do(ctx, http.MethodGet, path.Join("/v1/transactions", orderRef, "status"), nil, &parsed); err != nil {
		return "", err
	}
	status, ok := model.ParseTransactionStatus(parsed.TransactionStatus)
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrPermanent, parsed.TransactionStatus)
	}
	return status, nil
}

// Cancel voids the transaction at the gateway.
func (c *HTTPClient) Cancel(ctx context.Context, orderRef string) (model.TransactionStatus, error) {
	var parsed statusResponse
	if err := c.do(ctx, http.MethodPost, path.Join("/v1/transactions", orderRef, "cancel"), nil, &parsed); err != nil {
		return "", err
	}
	status, ok := model.ParseTransactionStatus(parsed.TransactionStatus)
	if !ok {
		return model.TransactionStatusCancel, nil
	}
	return status, nil
}

// do performs the request with bounded retries. Transport failures and 5xx
// responses retry with doubling delay; 4xx responses are permanent.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", c.authHeader)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("gateway request failed",
				slog.String("endpoint", endpoint),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out == nil {
				return nil
			}
			return json.Unmarshal(respBody, out)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("gateway error: %s", resp.Status)
			c.logger.Warn("gateway returned server error",
				slog.String("endpoint", endpoint),
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt))
		default:
			c.logger.Error("gateway rejected request",
				slog.String("endpoint", endpoint),
				slog.Int("status", resp.StatusCode),
				slog.String("body", string(respBody)))
			return fmt.Errorf("%w: %s", ErrPermanent, resp.Status)
		}
	}

	return fmt.Errorf("gateway unavailable after %d attempts: %w", maxAttempts, lastErr)
}
