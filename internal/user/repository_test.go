package user

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/inkwell-cms/inkwell/internal/auth"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestRepositoryFindByEmail(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	hash := "hashed-password"
	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "a@example.com", Password: &hash}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	ident, err := repo.FindByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("failed to find by email: %v", err)
	}
	if ident.ID != u.ID || ident.PasswordHash != hash {
		t.Errorf("unexpected identity: %+v", ident)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, auth.ErrNoSuchUser) {
		t.Errorf("expected ErrNoSuchUser, got %v", err)
	}
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "a@example.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	ident, err := repo.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("failed to find by id: %v", err)
	}
	// No password hash on this account.
	if ident.PasswordHash != "" {
		t.Errorf("expected empty password hash, got %q", ident.PasswordHash)
	}
}

func TestRepositoryCreateGoogleUser(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	ident, err := repo.CreateGoogleUser(ctx, auth.GoogleProfile{
		GoogleID: "g-123", Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("failed to create google user: %v", err)
	}
	if ident.GoogleID != "g-123" || ident.PasswordHash != "" {
		t.Errorf("unexpected identity: %+v", ident)
	}

	found, err := repo.FindByGoogleID(ctx, "g-123")
	if err != nil {
		t.Fatalf("failed to find by google id: %v", err)
	}
	if found.ID != ident.ID {
		t.Errorf("expected %q, got %q", ident.ID, found.ID)
	}
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "a@example.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Federation against an email already owned by another account must
	// surface as a duplicate, not merge.
	_, err := repo.CreateGoogleUser(ctx, auth.GoogleProfile{
		GoogleID: "g-123", Email: "a@example.com",
	})
	if !errors.Is(err, auth.ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestRepositoryDuplicateGoogleID(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateGoogleUser(ctx, auth.GoogleProfile{GoogleID: "g-123", Email: "a@example.com"}); err != nil {
		t.Fatalf("failed to create google user: %v", err)
	}
	_, err := repo.CreateGoogleUser(ctx, auth.GoogleProfile{GoogleID: "g-123", Email: "b@example.com"})
	if !errors.Is(err, auth.ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
}
