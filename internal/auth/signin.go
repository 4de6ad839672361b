package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SignInService resolves a user by email and verifies the password.
type SignInService struct {
	directory UserDirectory
	hasher    Hasher
	issuer    *TokenIssuer
	throttle  *Throttle
	log       *zap.Logger

	// Compared against when no user matches the email, so the unknown-email
	// path costs the same as a real verification.
	decoyHash string
}

func NewSignInService(directory UserDirectory, hasher Hasher, issuer *TokenIssuer, throttle *Throttle, log *zap.Logger) (*SignInService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	decoy, err := hasher.Hash("inkwell-decoy")
	if err != nil {
		return nil, fmt.Errorf("sign-in: prepare decoy hash: %w", err)
	}
	return &SignInService{
		directory: directory,
		hasher:    hasher,
		issuer:    issuer,
		throttle:  throttle,
		log:       log,
		decoyHash: decoy,
	}, nil
}

// SignIn verifies the password for the account registered under email and
// returns a fresh token pair. A wrong password, an unknown email, a
// federation-only account and a locked-out account all fail with the same
// ErrUnauthenticated; only infrastructure failures surface as ErrTransient.
func (s *SignInService) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	if s.throttle != nil {
		locked, err := s.throttle.Locked(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%w: lockout check: %v", ErrTransient, err)
		}
		if locked {
			s.log.Warn("sign-in rejected, account locked out", zap.String("email", email))
			return nil, ErrUnauthenticated
		}
	}

	ident, err := s.directory.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNoSuchUser):
		// Burn a comparison so the miss is not observable through timing.
		_, _ = s.hasher.Verify(password, s.decoyHash)
		s.fail(ctx, email)
		return nil, ErrUnauthenticated
	case err != nil:
		return nil, fmt.Errorf("%w: directory lookup: %v", ErrTransient, err)
	}

	if ident.PasswordHash == "" {
		// Federation-only account; password sign-in is unavailable.
		_, _ = s.hasher.Verify(password, s.decoyHash)
		s.fail(ctx, email)
		return nil, ErrUnauthenticated
	}

	ok, err := s.hasher.Verify(password, ident.PasswordHash)
	if err != nil {
		s.log.Error("password verification errored", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if !ok {
		s.fail(ctx, email)
		return nil, ErrUnauthenticated
	}

	if s.throttle != nil {
		s.throttle.Success(ctx, email)
	}
	return s.issuer.Issue(ident)
}

func (s *SignInService) fail(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Failure(ctx, email); err != nil {
		s.log.Warn("recording sign-in failure", zap.Error(err))
	}
}
