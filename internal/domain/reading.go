package domain

import (
	"context"
	"time"
)

// Reading represents a single stored BMI measurement. BMI and Category are
// computed once at save time and never recomputed on read, so historical
// rows stay stable even if the formula changes later.
type Reading struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Timestamp time.Time  `json:"timestamp"`
	Weight    float64    `json:"weight"`
	Height    float64    `json:"height"`
	Unit      UnitSystem `json:"unit"`
	BMI       float64    `json:"bmi"`
	Category  string     `json:"category"`
	Notes     string     `json:"notes,omitempty"`
}

// ReadingRepository defines the port for reading persistence.
type ReadingRepository interface {
	// AddReading inserts a fully populated reading and returns its id.
	// Returns ErrNotFound if the owning user does not exist.
	AddReading(ctx context.Context, r Reading) (int64, error)
	// DeleteReading removes a single reading. Returns ErrNotFound if absent.
	DeleteReading(ctx context.Context, id int64) error
	// ListReadings returns the user's readings ordered by timestamp
	// ascending, ties broken by id ascending. Returns ErrNotFound for an
	// unknown user; a known user with no readings yields an empty slice.
	ListReadings(ctx context.Context, userID int64) ([]Reading, error)
}
