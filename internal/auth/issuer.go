package auth

import (
	"fmt"
	"time"

	"github.com/inkwell-cms/inkwell/internal/auth/token"
)

// TokenPair is the sole externally observable output of every issuance
// path. Created per request, never stored server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenIssuer builds the access+refresh pair for a resolved identity. Every
// issuance path terminates here.
type TokenIssuer struct {
	signer     *token.Signer
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(signer *token.Signer, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{signer: signer, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue signs a short-lived access token (subject + email) and a long-lived
// refresh token (subject only). Two calls for the same identity produce
// distinct tokens; the issued-at and expiry are taken fresh each time.
func (i *TokenIssuer) Issue(ident *Identity) (*TokenPair, error) {
	access, err := i.signer.Sign(ident.ID, ident.Email, token.KindAccess, i.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := i.signer.Sign(ident.ID, "", token.KindRefresh, i.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
