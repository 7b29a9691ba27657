package app

import (
	"context"
	"fmt"
	"strings"

	"bmitrack/internal/domain"
)

// UserService encapsulates user management use cases.
type UserService struct {
	repo domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// AddUser validates and creates a new user, returning its id.
func (s *UserService) AddUser(ctx context.Context, name, dob string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	return s.repo.CreateUser(ctx, name, strings.TrimSpace(dob))
}

// RenameUser changes a user's name. Renaming to the current name is a no-op
// success; colliding with a different user fails.
func (s *UserService) RenameUser(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	return s.repo.RenameUser(ctx, id, name)
}

// DeleteUser removes a user and all owned readings, returning how many
// readings were deleted with it.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	return s.repo.DeleteUser(ctx, id)
}

// ListUsers returns all users ordered by name, case-insensitive.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}
