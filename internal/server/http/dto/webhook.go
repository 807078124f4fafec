package dto

import "github.com/andinaft/bakeryd/internal/domain/model"

// PaymentNotificationRequest mirrors the gateway webhook payload. All fields
// arrive as strings; the signature covers them verbatim, so no coercion
// happens before verification.
type PaymentNotificationRequest struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	Currency          string `json:"currency"`
}

// ToModel converts the payload into the domain notification.
func (r PaymentNotificationRequest) ToModel() model.PaymentNotification {
	return model.PaymentNotification{
		TransactionTime:   r.TransactionTime,
		TransactionStatus: r.TransactionStatus,
		TransactionID:     r.TransactionID,
		StatusCode:        r.StatusCode,
		SignatureKey:      r.SignatureKey,
		PaymentType:       r.PaymentType,
		OrderID:           r.OrderID,
		MerchantID:        r.MerchantID,
		GrossAmount:       r.GrossAmount,
		FraudStatus:       r.FraudStatus,
		Currency:          r.Currency,
	}
}
