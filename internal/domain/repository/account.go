package repository

import (
	"context"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// AccountRepository describes persistence operations with customer accounts.
type AccountRepository interface {
	Create(ctx context.Context, login, passwordHash, name, phone string) (*model.Account, error)
	GetByLogin(ctx context.Context, login string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}
