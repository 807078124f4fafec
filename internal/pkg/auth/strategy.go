package auth

import (
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

type Strategy interface {
	IssueToken(accountID int64, role model.Role) (string, error)
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
