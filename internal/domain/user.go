// Package domain contains the core business entities and interfaces.
package domain

import "context"

// User represents a tracked person.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// DOB is an optional free-form date of birth; empty means not recorded.
	DOB string `json:"dob,omitempty"`
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	// CreateUser inserts a new user and returns its id. Returns
	// ErrDuplicateUser if another user already has the same name
	// case-insensitively.
	CreateUser(ctx context.Context, name, dob string) (int64, error)
	// RenameUser changes a user's name. Returns ErrNotFound if the id is
	// unknown and ErrDuplicateUser if the name collides with a different
	// user. Renaming a user to its current name succeeds.
	RenameUser(ctx context.Context, id int64, name string) error
	// DeleteUser removes the user and, atomically, every reading it owns.
	// Returns the number of readings deleted, or ErrNotFound.
	DeleteUser(ctx context.Context, id int64) (int64, error)
	// ListUsers returns all users ordered by name, case-insensitive,
	// ascending.
	ListUsers(ctx context.Context) ([]User, error)
	// GetUser returns a user or ErrNotFound.
	GetUser(ctx context.Context, id int64) (*User, error)
}
