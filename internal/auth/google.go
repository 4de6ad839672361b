package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
)

const googleIssuer = "https://accounts.google.com"

// GoogleVerifier validates Google ID tokens against Google's published keys,
// scoped to this application's client id. Constructed once at startup; safe
// for concurrent use afterwards.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("google verifier: discover provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google verifier: %w", err)
	}

	var claims struct {
		Subject    string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("google verifier: parse claims: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, errors.New("google verifier: id token missing required claims")
	}

	return &GoogleProfile{
		GoogleID:  claims.Subject,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
	}, nil
}

// GoogleService authenticates a Google ID token, reconciling the external
// identity against the local directory and creating a federation-only
// account on first sight.
type GoogleService struct {
	verifier  IdentityVerifier
	directory UserDirectory
	issuer    *TokenIssuer
	log       *zap.Logger
}

func NewGoogleService(verifier IdentityVerifier, directory UserDirectory, issuer *TokenIssuer, log *zap.Logger) *GoogleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoogleService{verifier: verifier, directory: directory, issuer: issuer, log: log}
}

// Authenticate verifies the provider token, finds or creates the bound local
// identity and issues a token pair. Any verification failure, including a
// network failure reaching the provider, is reported as ErrUnauthenticated;
// the distinct cause is only logged. An email already owned by a different
// account fails with ErrConflict rather than merging.
func (s *GoogleService) Authenticate(ctx context.Context, providerToken string) (*TokenPair, error) {
	profile, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		s.log.Warn("google token verification failed", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	ident, err := s.directory.FindByGoogleID(ctx, profile.GoogleID)
	switch {
	case err == nil:
		return s.issuer.Issue(ident)
	case !errors.Is(err, ErrNoSuchUser):
		s.log.Error("directory lookup during federation", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	created, err := s.directory.CreateGoogleUser(ctx, *profile)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			s.log.Warn("federation conflicts with existing account",
				zap.String("google_id", profile.GoogleID))
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: create federated user: %v", ErrTransient, err)
	}

	s.log.Info("federated user created",
		zap.String("user_id", created.ID),
		zap.String("google_id", profile.GoogleID),
	)
	return s.issuer.Issue(created)
}
