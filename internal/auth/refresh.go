package auth

import (
	"context"
	"errors"

	"github.com/inkwell-cms/inkwell/internal/auth/token"
	"go.uber.org/zap"
)

// RefreshService rotates a refresh token into a fresh token pair.
//
// Refresh tokens are not revocable: once issued, a token stays valid until
// its natural expiry. Verification plus a directory re-resolution is the
// entire trust decision.
type RefreshService struct {
	signer    *token.Signer
	directory UserDirectory
	issuer    *TokenIssuer
	log       *zap.Logger
}

func NewRefreshService(signer *token.Signer, directory UserDirectory, issuer *TokenIssuer, log *zap.Logger) *RefreshService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RefreshService{signer: signer, directory: directory, issuer: issuer, log: log}
}

// Refresh verifies the incoming token, re-resolves its subject and issues a
// new pair. An access token presented here is rejected even when validly
// signed, as is a subject deleted since issuance. Every failure collapses to
// ErrUnauthenticated.
func (s *RefreshService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.signer.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			s.log.Debug("refresh token expired", zap.Error(err))
		} else {
			s.log.Warn("refresh token rejected", zap.Error(err))
		}
		return nil, ErrUnauthenticated
	}
	if claims.Kind != token.KindRefresh {
		s.log.Warn("non-refresh token presented for rotation",
			zap.String("kind", string(claims.Kind)),
			zap.String("sub", claims.Subject),
		)
		return nil, ErrUnauthenticated
	}

	ident, err := s.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, ErrNoSuchUser) {
			s.log.Error("directory lookup during refresh", zap.Error(err))
		}
		return nil, ErrUnauthenticated
	}

	return s.issuer.Issue(ident)
}
