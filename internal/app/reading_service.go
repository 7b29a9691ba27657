package app

import (
	"context"
	"strings"
	"time"

	"bmitrack/internal/domain"
)

// ReadingService encapsulates measurement recording use cases.
type ReadingService struct {
	repo domain.ReadingRepository
}

// NewReadingService creates a ReadingService backed by the given repository.
func NewReadingService(repo domain.ReadingRepository) *ReadingService {
	return &ReadingService{repo: repo}
}

// SaveReading computes BMI and category from the raw inputs, stamps the
// current UTC instant, and persists the reading. The stored BMI and category
// never change afterwards; corrections are delete plus re-insert.
func (s *ReadingService) SaveReading(ctx context.Context, userID int64, weight, height float64, unit domain.UnitSystem, notes string) (int64, error) {
	bmi, err := domain.Compute(weight, height, unit)
	if err != nil {
		return 0, err
	}
	r := domain.Reading{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Weight:    weight,
		Height:    height,
		Unit:      unit,
		BMI:       bmi,
		Category:  domain.Classify(bmi),
		Notes:     strings.TrimSpace(notes),
	}
	return s.repo.AddReading(ctx, r)
}

// DeleteReading removes a single reading; no cascading effects.
func (s *ReadingService) DeleteReading(ctx context.Context, id int64) error {
	return s.repo.DeleteReading(ctx, id)
}
