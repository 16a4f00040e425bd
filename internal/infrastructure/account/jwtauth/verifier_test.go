package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

func newTestVerifier(issuer string) (*Verifier, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC))
	return NewVerifier("test-secret", issuer, clock), clock
}

func TestVerifier_VerifyAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	v, _ := newTestVerifier("draft-league")
	token, err := v.Sign("user-1", "u1@example.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	principal, err := v.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "u1@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifier_VerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	v, clock := newTestVerifier("")
	token, err := v.Sign("user-1", "", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	clock.Advance(2 * time.Minute)

	if _, err := v.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestVerifier_VerifyAccessToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuerA, _ := newTestVerifier("issuer-a")
	issuerB, _ := newTestVerifier("issuer-b")
	token, err := issuerA.Sign("user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuerB.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for wrong issuer, got %v", err)
	}
}

func TestVerifier_VerifyAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	v, clock := newTestVerifier("")
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := v.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for HS512 token, got %v", err)
	}
}

func TestVerifier_VerifyAccessToken_MissingSubject(t *testing.T) {
	t.Parallel()

	v, _ := newTestVerifier("")
	token, err := v.Sign("", "", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := v.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without subject, got %v", err)
	}
}
