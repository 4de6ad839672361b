package user

import (
	"context"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/auth"
)

// CreateUserInput carries the attributes for a password registration.
type CreateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Service creates password accounts. Federated accounts are created by the
// repository on behalf of the auth package.
type Service struct {
	repo   *Repository
	hasher auth.Hasher
}

func NewService(repo *Repository, hasher auth.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u := &User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  &hashed,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}
