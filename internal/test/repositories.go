package test

import (
	"context"
	"time"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	Accounts map[string]*model.Account
	ByID     map[int64]*model.Account
	Next     int64
	Err      error
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		Accounts: make(map[string]*model.Account),
		ByID:     make(map[int64]*model.Account),
		Next:     1,
	}
}

// Create registers account unless already exists or stub has explicit error.
func (s *AccountRepositoryStub) Create(ctx context.Context, login, passwordHash, name, phone string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Accounts[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	account := &model.Account{
		ID:           s.Next,
		Login:        login,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         model.RoleCustomer,
	}
	s.Next++
	s.Accounts[login] = account
	s.ByID[account.ID] = account
	return account, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *AccountRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.Accounts[login]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.ByID[id]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StatusCall records one purchase status update.
type StatusCall struct {
	PurchaseID int64
	Status     model.PurchaseStatus
}

// PurchaseRepositoryStub stores purchases in-memory for tests.
type PurchaseRepositoryStub struct {
	Purchases map[int64]*model.Purchase
	Next      int64

	CreateFn       func(context.Context, *model.Purchase) error
	UpdateStatusFn func(context.Context, int64, model.PurchaseStatus) error

	StatusCalls []StatusCall
	Deleted     []int64
}

// NewPurchaseRepositoryStub constructs stub repository with initialized maps.
func NewPurchaseRepositoryStub() *PurchaseRepositoryStub {
	return &PurchaseRepositoryStub{Purchases: make(map[int64]*model.Purchase), Next: 1}
}

// Create assigns identifiers and stores purchase.
func (s *PurchaseRepositoryStub) Create(ctx context.Context, purchase *model.Purchase) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, purchase)
	}
	purchase.ID = s.Next
	purchase.CreatedAt = time.Now()
	purchase.UpdatedAt = purchase.CreatedAt
	for i := range purchase.Items {
		purchase.Items[i].ID = s.Next*100 + int64(i)
		purchase.Items[i].PurchaseID = purchase.ID
	}
	s.Next++
	s.Purchases[purchase.ID] = purchase
	return nil
}

// GetByID returns stored purchase or not found.
func (s *PurchaseRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Purchase, error) {
	if purchase, ok := s.Purchases[id]; ok {
		copied := *purchase
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByAccount returns purchases owned by account.
func (s *PurchaseRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.Purchase, error) {
	var result []model.Purchase
	for _, purchase := range s.Purchases {
		if purchase.AccountID == accountID {
			result = append(result, *purchase)
		}
	}
	return result, nil
}

// ListAll returns every stored purchase.
func (s *PurchaseRepositoryStub) ListAll(ctx context.Context) ([]model.Purchase, error) {
	var result []model.Purchase
	for _, purchase := range s.Purchases {
		result = append(result, *purchase)
	}
	return result, nil
}

// UpdateStatus records the call and mutates the stored purchase.
func (s *PurchaseRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.PurchaseStatus) error {
	s.StatusCalls = append(s.StatusCalls, StatusCall{PurchaseID: id, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	purchase, ok := s.Purchases[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	purchase.Status = status
	return nil
}

// Delete removes the purchase and records the call.
func (s *PurchaseRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.Deleted = append(s.Deleted, id)
	delete(s.Purchases, id)
	return nil
}

// TransactionStatusCall records one transaction status update.
type TransactionStatusCall struct {
	TransactionID  int64
	Status         model.TransactionStatus
	PurchaseID     int64
	PurchaseStatus model.PurchaseStatus
	Joint          bool
}

// TransactionRepositoryStub stores transactions in-memory for tests.
// Wiring Purchases makes the joint status update mutate the owning purchase
// the way the database implementation does.
type TransactionRepositoryStub struct {
	Transactions map[int64]*model.Transaction
	Purchases    *PurchaseRepositoryStub
	Next         int64

	CreateFn    func(context.Context, *model.Transaction) error
	HasActiveFn func(context.Context, int64) (bool, error)

	StatusCalls []TransactionStatusCall
	Deleted     []int64
}

// NewTransactionRepositoryStub constructs stub repository with initialized maps.
func NewTransactionRepositoryStub() *TransactionRepositoryStub {
	return &TransactionRepositoryStub{Transactions: make(map[int64]*model.Transaction), Next: 1}
}

// Create assigns identifier and stores transaction.
func (s *TransactionRepositoryStub) Create(ctx context.Context, tx *model.Transaction) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, tx)
	}
	tx.ID = s.Next
	tx.CreatedAt = time.Now()
	s.Next++
	s.Transactions[tx.ID] = tx
	return nil
}

// GetByID returns stored transaction or not found.
func (s *TransactionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if tx, ok := s.Transactions[id]; ok {
		copied := *tx
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOrderRef resolves transaction by gateway order identifier.
func (s *TransactionRepositoryStub) GetByOrderRef(ctx context.Context, orderRef string) (*model.Transaction, error) {
	for _, tx := range s.Transactions {
		if tx.OrderRef == orderRef {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByPurchase returns transactions of one purchase.
func (s *TransactionRepositoryStub) ListByPurchase(ctx context.Context, purchaseID int64) ([]model.Transaction, error) {
	var result []model.Transaction
	for _, tx := range s.Transactions {
		if tx.PurchaseID == purchaseID {
			result = append(result, *tx)
		}
	}
	return result, nil
}

// ListUnsettled returns transactions still awaiting a final status.
func (s *TransactionRepositoryStub) ListUnsettled(ctx context.Context, limit int) ([]model.Transaction, error) {
	var result []model.Transaction
	for _, tx := range s.Transactions {
		if tx.Status == model.TransactionStatusCreated || tx.Status == model.TransactionStatusPending {
			result = append(result, *tx)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// HasActiveForAccount reports whether account holds unfinished transaction.
func (s *TransactionRepositoryStub) HasActiveForAccount(ctx context.Context, accountID int64) (bool, error) {
	if s.HasActiveFn != nil {
		return s.HasActiveFn(ctx, accountID)
	}
	for _, tx := range s.Transactions {
		if tx.AccountID != accountID {
			continue
		}
		if tx.Status == model.TransactionStatusCreated || tx.Status == model.TransactionStatusPending {
			return true, nil
		}
	}
	return false, nil
}

// AttachGatewayRef stores gateway reference and payment URL.
func (s *TransactionRepositoryStub) AttachGatewayRef(ctx context.Context, id int64, gatewayRef, paymentURL string) error {
	tx, ok := s.Transactions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	tx.GatewayRef = gatewayRef
	tx.PaymentURL = paymentURL
	return nil
}

// UpdateStatus records the call and mutates the stored transaction.
func (s *TransactionRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time) error {
	s.StatusCalls = append(s.StatusCalls, TransactionStatusCall{TransactionID: id, Status: status})
	tx, ok := s.Transactions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	tx.Status = status
	tx.FinalizedAt = finalizedAt
	return nil
}

// SetStatusWithPurchase records the joint update.
func (s *TransactionRepositoryStub) SetStatusWithPurchase(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time, purchaseID int64, purchaseStatus model.PurchaseStatus) error {
	s.StatusCalls = append(s.StatusCalls, TransactionStatusCall{
		TransactionID:  id,
		Status:         status,
		PurchaseID:     purchaseID,
		PurchaseStatus: purchaseStatus,
		Joint:          true,
	})
	tx, ok := s.Transactions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	tx.Status = status
	tx.FinalizedAt = finalizedAt
	if s.Purchases != nil {
		if purchase, ok := s.Purchases.Purchases[purchaseID]; ok {
			purchase.Status = purchaseStatus
		}
	}
	return nil
}

// Delete removes the transaction and records the call.
func (s *TransactionRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.Deleted = append(s.Deleted, id)
	delete(s.Transactions, id)
	return nil
}

// CalendarRepositoryStub stores blocked dates in-memory for tests.
type CalendarRepositoryStub struct {
	Blocks map[string]model.ClosedDate

	ReserveErr error
	Released   []int64
}

// NewCalendarRepositoryStub constructs stub repository with initialized maps.
func NewCalendarRepositoryStub() *CalendarRepositoryStub {
	return &CalendarRepositoryStub{Blocks: make(map[string]model.ClosedDate)}
}

func calendarKey(date time.Time) string {
	return model.DateOnly(date).Format("2006-01-02")
}

// IsBlocked reports whether the date already carries a block.
func (s *CalendarRepositoryStub) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	_, ok := s.Blocks[calendarKey(date)]
	return ok, nil
}

// ReserveAll inserts every block or fails atomically on the first collision.
func (s *CalendarRepositoryStub) ReserveAll(ctx context.Context, blocks []model.ClosedDate) error {
	if s.ReserveErr != nil {
		return s.ReserveErr
	}
	for _, block := range blocks {
		if _, taken := s.Blocks[calendarKey(block.Date)]; taken {
			return domainErrors.ErrDateUnavailable
		}
	}
	for _, block := range blocks {
		s.Blocks[calendarKey(block.Date)] = block
	}
	return nil
}

// ReleaseByPurchase drops every block referencing the purchase.
func (s *CalendarRepositoryStub) ReleaseByPurchase(ctx context.Context, purchaseID int64) error {
	s.Released = append(s.Released, purchaseID)
	for key, block := range s.Blocks {
		if block.PurchaseID != nil && *block.PurchaseID == purchaseID {
			delete(s.Blocks, key)
		}
	}
	return nil
}

// ListBetween returns blocks within the inclusive range.
func (s *CalendarRepositoryStub) ListBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error) {
	var result []model.ClosedDate
	for _, block := range s.Blocks {
		day := model.DateOnly(block.Date)
		if !day.Before(model.DateOnly(from)) && !day.After(model.DateOnly(to)) {
			result = append(result, block)
		}
	}
	return result, nil
}

// ListAfter returns blocks on or after the date.
func (s *CalendarRepositoryStub) ListAfter(ctx context.Context, from time.Time) ([]model.ClosedDate, error) {
	var result []model.ClosedDate
	for _, block := range s.Blocks {
		if !model.DateOnly(block.Date).Before(model.DateOnly(from)) {
			result = append(result, block)
		}
	}
	return result, nil
}

// Close inserts an admin closure.
func (s *CalendarRepositoryStub) Close(ctx context.Context, date time.Time, reason string) error {
	key := calendarKey(date)
	if _, taken := s.Blocks[key]; taken {
		return domainErrors.ErrDateUnavailable
	}
	s.Blocks[key] = model.ClosedDate{Date: model.DateOnly(date), Type: model.ClosureTypeClosed, Reason: reason}
	return nil
}

// Open removes an admin closure.
func (s *CalendarRepositoryStub) Open(ctx context.Context, date time.Time) error {
	key := calendarKey(date)
	block, ok := s.Blocks[key]
	if !ok || block.Type != model.ClosureTypeClosed {
		return domainErrors.ErrNotFound
	}
	delete(s.Blocks, key)
	return nil
}

// VariantRepositoryStub serves a fixed catalog for tests.
type VariantRepositoryStub struct {
	Variants map[int64]*model.Variant
}

// NewVariantRepositoryStub constructs stub repository with initialized maps.
func NewVariantRepositoryStub() *VariantRepositoryStub {
	return &VariantRepositoryStub{Variants: make(map[int64]*model.Variant)}
}

// GetByID returns stored variant or not found.
func (s *VariantRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	if variant, ok := s.Variants[id]; ok {
		return variant, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CartRepositoryStub stores cart lines in-memory for tests.
type CartRepositoryStub struct {
	Items   []model.CartItem
	Next    int64
	Cleared []int64
}

// Add appends a cart line.
func (s *CartRepositoryStub) Add(ctx context.Context, accountID, variantID int64, quantity int) (*model.CartItem, error) {
	s.Next++
	item := model.CartItem{ID: s.Next, AccountID: accountID, VariantID: variantID, Quantity: quantity}
	s.Items = append(s.Items, item)
	return &item, nil
}

// ListByAccount returns lines of one account.
func (s *CartRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.CartItem, error) {
	var result []model.CartItem
	for _, item := range s.Items {
		if item.AccountID == accountID {
			result = append(result, item)
		}
	}
	return result, nil
}

// Clear drops lines of one account and records the call.
func (s *CartRepositoryStub) Clear(ctx context.Context, accountID int64) error {
	s.Cleared = append(s.Cleared, accountID)
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.AccountID != accountID {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	return nil
}
