package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	pkgAuth "github.com/andinaft/bakeryd/internal/pkg/auth"
	testhelpers "github.com/andinaft/bakeryd/internal/test"
)

func newAuthUseCase() (*AuthUseCase, *testhelpers.AccountRepositoryStub) {
	repo := testhelpers.NewAccountRepositoryStub()
	strategy := testhelpers.StrategyStub{
		IssueFn: func(accountID int64, role model.Role) (string, error) {
			return fmt.Sprintf("token-%d", accountID), nil
		},
	}
	return NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy), repo
}

func TestAuthRegisterIssuesToken(t *testing.T) {
	uc, _ := newAuthUseCase()

	account, token, err := uc.Register(context.Background(), "alice", "secret", "Alice", "+62811111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Login != "alice" || account.PasswordHash != "hash:secret" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if token != fmt.Sprintf("token-%d", account.ID) {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthRegisterRejectsDuplicateLogin(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "alice", "secret", "Alice", ""); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	_, _, err := uc.Register(ctx, "alice", "other", "Alice Again", "")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthRegisterRejectsEmptyCredentials(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	cases := [][2]string{{"", "secret"}, {"alice", ""}, {"   ", "secret"}}
	for _, c := range cases {
		if _, _, err := uc.Register(ctx, c[0], c[1], "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("login=%q password=%q: expected ErrInvalidCredentials, got %v", c[0], c[1], err)
		}
	}
}

func TestAuthAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	registered, _, err := uc.Register(ctx, "alice", "secret", "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	account, token, err := uc.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != registered.ID {
		t.Fatalf("expected account %d, got %d", registered.ID, account.ID)
	}
	if token != fmt.Sprintf("token-%d", account.ID) {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthAuthenticateRejectsWrongPassword(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "alice", "secret", "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthAuthenticateUnknownLogin(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, _, err := uc.Authenticate(context.Background(), "ghost", "secret")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthParseTokenEmpty(t *testing.T) {
	uc, _ := newAuthUseCase()

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
