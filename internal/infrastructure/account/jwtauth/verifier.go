// Package jwtauth verifies HS256 bearer tokens locally, for deployments
// that do not run an Anubis identity service.
package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/domain/user"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	clock  clockwork.Clock
}

func NewVerifier(secret, issuer string, clock clockwork.Clock) *Verifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		clock:  clock,
	}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthenticated, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthenticated)
	}
	return user.Principal{UserID: subject, Email: claims.Email}, nil
}

// Sign issues a token for userID valid for ttl. Used by local tooling and
// tests; production tokens come from the identity provider.
func (v *Verifier) Sign(userID, email string, ttl time.Duration) (string, error) {
	now := v.clock.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
