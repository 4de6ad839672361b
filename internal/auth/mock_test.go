package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-cms/inkwell/internal/auth/token"
)

// mockDirectory is an in-memory UserDirectory for tests.
type mockDirectory struct {
	users   map[string]*Identity // keyed by id
	nextID  int
	failAll error // when set, every call fails with this error
}

func newMockDirectory(users ...*Identity) *mockDirectory {
	d := &mockDirectory{users: make(map[string]*Identity)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *mockDirectory) FindByEmail(_ context.Context, email string) (*Identity, error) {
	if d.failAll != nil {
		return nil, d.failAll
	}
	for _, u := range d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNoSuchUser
}

func (d *mockDirectory) FindByID(_ context.Context, id string) (*Identity, error) {
	if d.failAll != nil {
		return nil, d.failAll
	}
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, ErrNoSuchUser
}

func (d *mockDirectory) FindByGoogleID(_ context.Context, googleID string) (*Identity, error) {
	if d.failAll != nil {
		return nil, d.failAll
	}
	for _, u := range d.users {
		if u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, ErrNoSuchUser
}

func (d *mockDirectory) CreateGoogleUser(_ context.Context, profile GoogleProfile) (*Identity, error) {
	if d.failAll != nil {
		return nil, d.failAll
	}
	for _, u := range d.users {
		if u.Email == profile.Email || u.GoogleID == profile.GoogleID {
			return nil, ErrDuplicateUser
		}
	}
	d.nextID++
	u := &Identity{
		ID:        fmt.Sprintf("g%d", d.nextID),
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		GoogleID:  profile.GoogleID,
	}
	d.users[u.ID] = u
	return u, nil
}

func (d *mockDirectory) len() int { return len(d.users) }

// brokenHasher hashes fine but always errors on verification, simulating a
// hashing-subsystem failure.
type brokenHasher struct{ Hasher }

func (brokenHasher) Verify(_, _ string) (bool, error) {
	return false, fmt.Errorf("%w: simulated", ErrHashingFailure)
}

func testIssuer() (*token.Signer, *TokenIssuer) {
	signer := token.NewSigner([]byte("s"), "app", "app-clients")
	return signer, NewTokenIssuer(signer, 15*time.Minute, 30*24*time.Hour)
}
