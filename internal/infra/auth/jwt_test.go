package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, err := mgr.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", time.Hour)

	if _, err := mgr.Verify("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestNewTokenManagerValidation(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("empty secret should be rejected")
	}
	if _, err := NewTokenManager("secret", 0); err == nil {
		t.Fatal("zero ttl should be rejected")
	}
}
