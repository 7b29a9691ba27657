// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bmitrack/internal/domain"
)

// DB implements the domain repositories in memory. Every operation holds a
// single mutex, so mutations never interleave and the cascading delete is
// one critical section, matching the SQL stores' transaction behavior.
type DB struct {
	mu       sync.Mutex
	users    []domain.User
	readings []domain.Reading

	userIDCounter    int64
	readingIDCounter int64
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ReadingRepository = (*DB)(nil)

// --- UserRepository ---

// CreateUser inserts a new user, enforcing case-insensitive name uniqueness.
func (db *DB) CreateUser(ctx context.Context, name, dob string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if strings.EqualFold(u.Name, name) {
			return 0, domain.ErrDuplicateUser
		}
	}

	db.userIDCounter++
	db.users = append(db.users, domain.User{ID: db.userIDCounter, Name: name, DOB: dob})
	return db.userIDCounter, nil
}

// RenameUser changes a user's name, rejecting collisions with other users.
func (db *DB) RenameUser(ctx context.Context, id int64, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i := range db.users {
		if db.users[i].ID == id {
			idx = i
			continue
		}
		if strings.EqualFold(db.users[i].Name, name) {
			return domain.ErrDuplicateUser
		}
	}
	if idx == -1 {
		return domain.ErrNotFound
	}
	db.users[idx].Name = name
	return nil
}

// DeleteUser removes the user and every owned reading.
func (db *DB) DeleteUser(ctx context.Context, id int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i := range db.users {
		if db.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, domain.ErrNotFound
	}
	db.users = append(db.users[:idx], db.users[idx+1:]...)

	kept := db.readings[:0]
	var removed int64
	for _, r := range db.readings {
		if r.UserID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	db.readings = kept
	return removed, nil
}

// ListUsers returns all users ordered by name, case-insensitive.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.User, len(db.users))
	copy(out, db.users)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// GetUser returns a copy of the user or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			ret := u
			return &ret, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- ReadingRepository ---

// AddReading inserts a reading after checking the owner exists.
func (db *DB) AddReading(ctx context.Context, r domain.Reading) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(r.UserID) {
		return 0, domain.ErrNotFound
	}

	db.readingIDCounter++
	r.ID = db.readingIDCounter
	db.readings = append(db.readings, r)
	return r.ID, nil
}

// DeleteReading removes a single reading by id.
func (db *DB) DeleteReading(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, r := range db.readings {
		if r.ID == id {
			db.readings = append(db.readings[:i], db.readings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListReadings returns the user's readings ordered by timestamp, id ascending.
func (db *DB) ListReadings(ctx context.Context, userID int64) ([]domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(userID) {
		return nil, domain.ErrNotFound
	}

	out := make([]domain.Reading, 0, len(db.readings))
	for _, r := range db.readings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// callers must hold db.mu
func (db *DB) userExists(id int64) bool {
	for _, u := range db.users {
		if u.ID == id {
			return true
		}
	}
	return false
}
