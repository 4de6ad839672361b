// Package token mints and verifies the signed claims inside access and
// refresh tokens. Signing is stateless: a Signer holds only the process-wide
// secret, issuer and audience, and every operation is safe for concurrent
// use.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes the two token roles sharing one signing scheme.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Leeway is the fixed clock-skew tolerance applied to expiry and
// issued-at checks during verification.
const Leeway = 30 * time.Second

// Verification failures. Distinguished internally for logging; collapsed to
// a single generic rejection at the HTTP boundary.
var (
	ErrInvalid = errors.New("token: invalid")
	ErrExpired = errors.New("token: expired")
)

// Claims is the signed payload. Access tokens carry the subject's email;
// refresh tokens carry only the subject, so an intercepted refresh token
// leaks as little as possible.
type Claims struct {
	Email string `json:"email,omitempty"`
	Kind  Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Signer signs and verifies claims with HS256.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
}

func NewSigner(secret []byte, issuer, audience string) *Signer {
	return &Signer{secret: secret, issuer: issuer, audience: audience}
}

// Sign mints a token of the given kind for subject, valid for ttl from now.
// Email is included only on access tokens.
func (s *Signer) Sign(subject, email string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// jti keeps two tokens minted in the same second distinct.
			ID: uuid.New().String(),
		},
	}
	if kind == KindAccess {
		claims.Email = email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, audience and issuer and returns the
// decoded claims. Expiry failures are reported as ErrExpired, everything
// else as ErrInvalid.
func (s *Signer) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithLeeway(Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.Kind != KindAccess && claims.Kind != KindRefresh {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalid, claims.Kind)
	}
	return claims, nil
}
