package token

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")

	raw, err := s.Sign("u1", "a@example.com", KindAccess, 15*time.Minute)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	claims, err := s.Verify(raw)
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if claims.Subject != "u1" {
		t.Errorf("expected subject u1, got %q", claims.Subject)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("expected email in access claims, got %q", claims.Email)
	}
	if claims.Kind != KindAccess {
		t.Errorf("expected access kind, got %q", claims.Kind)
	}
	if claims.Issuer != "app" {
		t.Errorf("expected issuer app, got %q", claims.Issuer)
	}
}

func TestRefreshClaimsCarryOnlySubject(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")

	raw, err := s.Sign("u1", "a@example.com", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	claims, err := s.Verify(raw)
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if claims.Email != "" {
		t.Errorf("refresh claims must not carry email, got %q", claims.Email)
	}
	if claims.Kind != KindRefresh {
		t.Errorf("expected refresh kind, got %q", claims.Kind)
	}
}

func TestVerifyExpired(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")

	// Expired beyond the leeway window.
	raw, err := s.Sign("u1", "", KindAccess, -(Leeway + time.Minute))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	_, err = s.Verify(raw)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")

	raw, err := s.Sign("u1", "", KindAccess, time.Second)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	if _, err := s.Verify(raw); err != nil {
		t.Errorf("token should verify before expiry: %v", err)
	}
}

func TestVerifyWrongAudienceOrIssuer(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")
	other := NewSigner([]byte("s"), "other-app", "other-clients")

	raw, err := other.Sign("u1", "", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	_, err = s.Verify(raw)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for foreign audience/issuer, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")
	forged := NewSigner([]byte("not-s"), "app", "app-clients")

	raw, err := forged.Sign("u1", "", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	_, err = s.Verify(raw)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad signature, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	s := NewSigner([]byte("s"), "app", "app-clients")
	if _, err := s.Verify("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
