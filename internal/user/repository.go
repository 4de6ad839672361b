package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-cms/inkwell/internal/auth"
	"gorm.io/gorm"
)

// Repository handles user persistence and implements auth.UserDirectory.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*auth.Identity, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *Repository) FindByGoogleID(ctx context.Context, googleID string) (*auth.Identity, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*auth.Identity, error) {
	var u User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNoSuchUser
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	return u.toIdentity(), nil
}

// CreateGoogleUser inserts a federation-only account. A violated uniqueness
// constraint on email or google id maps to auth.ErrDuplicateUser.
func (r *Repository) CreateGoogleUser(ctx context.Context, profile auth.GoogleProfile) (*auth.Identity, error) {
	googleID := profile.GoogleID
	u := User{
		ID:        uuid.New().String(),
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		GoogleID:  &googleID,
	}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, auth.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create google user: %w", err)
	}
	return u.toIdentity(), nil
}

// Create inserts a password account. The caller hashes the password.
func (r *Repository) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateErr(err) {
			return auth.ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNoSuchUser
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// isDuplicateErr matches unique-constraint violations across the supported
// dialects. gorm translates them where the driver supports it; sqlite's
// message is matched directly.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
