package model

// PaymentNotification is the payload the gateway posts to the webhook
// endpoint. All fields arrive as strings on the wire.
type PaymentNotification struct {
	TransactionTime   string
	TransactionStatus string
	TransactionID     string
	StatusCode        string
	SignatureKey      string
	PaymentType       string
	OrderID           string
	MerchantID        string
	GrossAmount       string
	FraudStatus       string
	Currency          string
}

// FraudAccepted reports whether the gateway's fraud screening passed. An
// absent flag counts as accepted, matching the gateway contract.
func (n PaymentNotification) FraudAccepted() bool {
	return n.FraudStatus == "" || n.FraudStatus == "accept"
}
