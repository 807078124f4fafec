package test

import (
	"context"

	"github.com/andinaft/bakeryd/internal/adapter/gateway"
	"github.com/andinaft/bakeryd/internal/domain/model"
)

// PaymentGatewayStub simulates the payment gateway client.
type PaymentGatewayStub struct {
	CreateFn func(context.Context, gateway.CreateRequest) (*gateway.CreateResponse, error)
	FetchFn  func(context.Context, string) (model.TransactionStatus, error)
	CancelFn func(context.Context, string) (model.TransactionStatus, error)

	CreateCalls []gateway.CreateRequest
	CancelCalls []string
}

// CreateTransaction records the request and returns configured response.
func (s *PaymentGatewayStub) CreateTransaction(ctx context.Context, req gateway.CreateRequest) (*gateway.CreateResponse, error) {
	s.CreateCalls = append(s.CreateCalls, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &gateway.CreateResponse{ReferenceID: "gw-" + req.OrderRef, RedirectURL: "https://pay.example/" + req.OrderRef}, nil
}

// FetchStatus returns configured status or PENDING.
func (s *PaymentGatewayStub) FetchStatus(ctx context.Context, orderRef string) (model.TransactionStatus, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, orderRef)
	}
	return model.TransactionStatusPending, nil
}

// Cancel records the call and returns configured status.
func (s *PaymentGatewayStub) Cancel(ctx context.Context, orderRef string) (model.TransactionStatus, error) {
	s.CancelCalls = append(s.CancelCalls, orderRef)
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderRef)
	}
	return model.TransactionStatusCancel, nil
}

// NotifierStub records order confirmations.
type NotifierStub struct {
	Err   error
	Calls []string
}

// OrderPlaced records the invoice of the confirmed order.
func (s *NotifierStub) OrderPlaced(ctx context.Context, purchase *model.Purchase, paymentURL string) error {
	s.Calls = append(s.Calls, purchase.InvoiceNumber)
	return s.Err
}
