package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// DBPool is the subset of pgxpool.Pool the storage uses. Declared as an
// interface so tests can substitute a mock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type purchaseRepository struct {
	storage *Storage
}

type transactionRepository struct {
	storage *Storage
}

type calendarRepository struct {
	storage *Storage
}

type variantRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{storage: s}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}

func (s *Storage) Calendar() repository.CalendarRepository {
	return &calendarRepository{storage: s}
}

func (s *Storage) Variants() repository.VariantRepository {
	return &variantRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'CUSTOMER',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(14,2) NOT NULL,
            min_qty INT NOT NULL DEFAULT 1,
            max_qty INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            variant_id BIGINT NOT NULL REFERENCES variants(id),
            quantity INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            invoice_number TEXT UNIQUE NOT NULL,
            event_date DATE NOT NULL,
            delivery_lat DOUBLE PRECISION NOT NULL,
            delivery_lon DOUBLE PRECISION NOT NULL,
            delivery_fee NUMERIC(14,2) NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
            id SERIAL PRIMARY KEY,
            purchase_id BIGINT NOT NULL REFERENCES purchases(id),
            variant_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price NUMERIC(14,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id SERIAL PRIMARY KEY,
            purchase_id BIGINT NOT NULL REFERENCES purchases(id),
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            order_ref TEXT UNIQUE NOT NULL,
            gateway_ref TEXT NOT NULL DEFAULT '',
            payment_url TEXT NOT NULL DEFAULT '',
            amount NUMERIC(14,2) NOT NULL,
            status TEXT NOT NULL,
            kind TEXT NOT NULL,
            payment_method TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            expires_at TIMESTAMPTZ NOT NULL,
            finalized_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS closed_dates (
            id SERIAL PRIMARY KEY,
            date DATE UNIQUE NOT NULL,
            closure_type TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            purchase_id BIGINT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_account ON purchases(account_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_purchase ON transactions(purchase_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_status ON transactions(account_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_closed_dates_purchase ON closed_dates(purchase_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, login, passwordHash, name, phone string) (*model.Account, error) {
	const query = `INSERT INTO accounts (login, password_hash, name, phone) VALUES ($1, $2, $3, $4)
                   RETURNING id, role, created_at`
	account := model.Account{Login: login, PasswordHash: passwordHash, Name: name, Phone: phone}
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, name, phone).Scan(&account.ID, &account.Role, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, name, phone, role, created_at FROM accounts WHERE login=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, name, phone, role, created_at FROM accounts WHERE id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) scanOne(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Login, &a.PasswordHash, &a.Name, &a.Phone, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- PurchaseRepository implementation ---

func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertPurchase = `INSERT INTO purchases (account_id, invoice_number, event_date, delivery_lat, delivery_lon, delivery_fee, status)
                                VALUES ($1, $2, $3, $4, $5, $6, $7)
                                RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertPurchase,
			purchase.AccountID, purchase.InvoiceNumber, purchase.EventDate,
			purchase.DeliveryLat, purchase.DeliveryLon, purchase.DeliveryFee, purchase.Status,
		).Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO purchase_items (purchase_id, variant_id, name, quantity, unit_price)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for i := range purchase.Items {
			item := &purchase.Items[i]
			item.PurchaseID = purchase.ID
			if err := tx.QueryRow(ctx, insertItem, purchase.ID, item.VariantID, item.Name, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

const purchaseColumns = `id, account_id, invoice_number, event_date, delivery_lat, delivery_lon, delivery_fee, status, created_at, updated_at`

func scanPurchase(row pgx.Row) (*model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.ID, &p.AccountID, &p.InvoiceNumber, &p.EventDate,
		&p.DeliveryLat, &p.DeliveryLon, &p.DeliveryFee, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) loadItems(ctx context.Context, purchase *model.Purchase) error {
	const query = `SELECT id, purchase_id, variant_id, name, quantity, unit_price
                   FROM purchase_items WHERE purchase_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, purchase.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.VariantID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		purchase.Items = append(purchase.Items, item)
	}
	return rows.Err()
}

func (r *purchaseRepository) GetByID(ctx context.Context, id int64) (*model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id=$1`
	purchase, err := scanPurchase(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepository) list(ctx context.Context, query string, args ...any) ([]model.Purchase, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.AccountID, &p.InvoiceNumber, &p.EventDate,
			&p.DeliveryLat, &p.DeliveryLon, &p.DeliveryFee, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *purchaseRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE account_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, accountID)
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id int64, status model.PurchaseStatus) error {
	const query = `UPDATE purchases SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id=$1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
		return err
	})
}

// --- TransactionRepository implementation ---

const transactionColumns = `id, purchase_id, account_id, order_ref, gateway_ref, payment_url, amount, status, kind, payment_method, created_at, expires_at, finalized_at`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.PurchaseID, &t.AccountID, &t.OrderRef, &t.GatewayRef, &t.PaymentURL,
		&t.Amount, &t.Status, &t.Kind, &t.PaymentMethod, &t.CreatedAt, &t.ExpiresAt, &t.FinalizedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	const query = `INSERT INTO transactions (purchase_id, account_id, order_ref, amount, status, kind, payment_method, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		t.PurchaseID, t.AccountID, t.OrderRef, t.Amount, t.Status, t.Kind, t.PaymentMethod, t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1`
	return scanTransaction(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *transactionRepository) GetByOrderRef(ctx context.Context, orderRef string) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE order_ref=$1`
	return scanTransaction(r.storage.pool.QueryRow(ctx, query, orderRef))
}

func (r *transactionRepository) listRows(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.PurchaseID, &t.AccountID, &t.OrderRef, &t.GatewayRef, &t.PaymentURL,
			&t.Amount, &t.Status, &t.Kind, &t.PaymentMethod, &t.CreatedAt, &t.ExpiresAt, &t.FinalizedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) ListByPurchase(ctx context.Context, purchaseID int64) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE purchase_id=$1 ORDER BY created_at`
	return r.listRows(ctx, query, purchaseID)
}

func (r *transactionRepository) ListUnsettled(ctx context.Context, limit int) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
              WHERE status IN ('CREATED', 'PENDING')
              ORDER BY created_at
              LIMIT $1`
	return r.listRows(ctx, query, limit)
}

func (r *transactionRepository) HasActiveForAccount(ctx context.Context, accountID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id=$1 AND status IN ('CREATED', 'PENDING'))`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *transactionRepository) AttachGatewayRef(ctx context.Context, id int64, gatewayRef, paymentURL string) error {
	const query = `UPDATE transactions SET gateway_ref=$1, payment_url=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, gatewayRef, paymentURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time) error {
	const query = `UPDATE transactions SET status=$1, finalized_at=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, finalizedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) SetStatusWithPurchase(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time, purchaseID int64, purchaseStatus model.PurchaseStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE transactions SET status=$1, finalized_at=$2 WHERE id=$3`, status, finalizedAt, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE purchases SET status=$1, updated_at=NOW() WHERE id=$2`, purchaseStatus, purchaseID); err != nil {
			return err
		}
		return nil
	})
}

func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	return err
}

// --- CalendarRepository implementation ---

func (r *calendarRepository) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM closed_dates WHERE date=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, model.DateOnly(date)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *calendarRepository) ReserveAll(ctx context.Context, blocks []model.ClosedDate) error {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO closed_dates (date, closure_type, reason, purchase_id) VALUES ($1, $2, $3, $4)`
		for _, block := range blocks {
			if _, err := tx.Exec(ctx, query, model.DateOnly(block.Date), block.Type, block.Reason, block.PurchaseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrDateUnavailable
		}
		return err
	}
	return nil
}

func (r *calendarRepository) ReleaseByPurchase(ctx context.Context, purchaseID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM closed_dates WHERE purchase_id=$1`, purchaseID)
	return err
}

const closedDateColumns = `id, date, closure_type, reason, purchase_id, created_at`

func (r *calendarRepository) listRows(ctx context.Context, query string, args ...any) ([]model.ClosedDate, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ClosedDate
	for rows.Next() {
		var d model.ClosedDate
		if err := rows.Scan(&d.ID, &d.Date, &d.Type, &d.Reason, &d.PurchaseID, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *calendarRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error) {
	query := `SELECT ` + closedDateColumns + ` FROM closed_dates WHERE date BETWEEN $1 AND $2 ORDER BY date`
	return r.listRows(ctx, query, model.DateOnly(from), model.DateOnly(to))
}

func (r *calendarRepository) ListAfter(ctx context.Context, from time.Time) ([]model.ClosedDate, error) {
	query := `SELECT ` + closedDateColumns + ` FROM closed_dates WHERE date >= $1 ORDER BY date`
	return r.listRows(ctx, query, model.DateOnly(from))
}

func (r *calendarRepository) Close(ctx context.Context, date time.Time, reason string) error {
	const query = `INSERT INTO closed_dates (date, closure_type, reason) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, model.DateOnly(date), model.ClosureTypeClosed, reason); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrDateUnavailable
		}
		return err
	}
	return nil
}

func (r *calendarRepository) Open(ctx context.Context, date time.Time) error {
	const query = `DELETE FROM closed_dates WHERE date=$1 AND closure_type=$2`
	tag, err := r.storage.pool.Exec(ctx, query, model.DateOnly(date), model.ClosureTypeClosed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- VariantRepository implementation ---

func (r *variantRepository) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	const query = `SELECT id, product_id, name, price, min_qty, max_qty FROM variants WHERE id=$1`
	var v model.Variant
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.MinQty, &v.MaxQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, accountID, variantID int64, quantity int) (*model.CartItem, error) {
	const query = `INSERT INTO cart_items (account_id, variant_id, quantity) VALUES ($1, $2, $3) RETURNING id`
	item := model.CartItem{AccountID: accountID, VariantID: variantID, Quantity: quantity}
	if err := r.storage.pool.QueryRow(ctx, query, accountID, variantID, quantity).Scan(&item.ID); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.CartItem, error) {
	const query = `SELECT id, account_id, variant_id, quantity FROM cart_items WHERE account_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.AccountID, &item.VariantID, &item.Quantity); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *cartRepository) Clear(ctx context.Context, accountID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE account_id=$1`, accountID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
