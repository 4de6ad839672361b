// Package auth implements credential issuance and federation: password
// sign-in, access/refresh token pairs, refresh rotation and Google identity
// reconciliation. It owns the narrow directory interface the user module
// implements, so the dependency runs one way only.
package auth

import "context"

// Identity is the authenticated subject as seen by this package: a read-only
// snapshot owned by the user directory. An Identity without a PasswordHash
// can only authenticate via federation.
type Identity struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // empty for federation-only accounts
	GoogleID     string
}

// GoogleProfile is the verified claim set extracted from a Google ID token.
// Consumed once per authentication and discarded.
type GoogleProfile struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
}

// UserDirectory is the external user store. Lookups return ErrNoSuchUser
// when no identity matches; CreateGoogleUser returns ErrDuplicateUser when a
// uniqueness constraint (email or google id) is violated.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByID(ctx context.Context, id string) (*Identity, error)
	FindByGoogleID(ctx context.Context, googleID string) (*Identity, error)
	CreateGoogleUser(ctx context.Context, profile GoogleProfile) (*Identity, error)
}

// IdentityVerifier validates a third-party ID token and extracts its
// profile. The production implementation talks to Google; tests substitute a
// fake.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error)
}
