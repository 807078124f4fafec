package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken(7, model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	actor, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if actor.AccountID != 7 || actor.Role != model.RoleAdmin {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestHMACStrategyRejectsForeignSecret(t *testing.T) {
	issued, err := NewHMACStrategy("secret", Options{}).IssueToken(7, model.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = NewHMACStrategy("other", Options{}).ParseToken(issued)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := &HMACStrategy{secret: []byte("secret"), ttl: -time.Minute}

	token, err := strategy.IssueToken(7, model.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsTamperedRole(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken(7, model.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	forged := strings.Replace(string(raw), string(model.RoleCustomer), string(model.RoleAdmin), 1)
	forgedToken := base64.StdEncoding.EncodeToString([]byte(forged))

	if _, err := strategy.ParseToken(forgedToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsMalformedTokens(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("too:few"))} {
		if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
