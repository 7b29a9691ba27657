package app

import (
	"context"

	"bmitrack/internal/domain"
)

// HistoryService builds ordered reading sequences per user and derives
// trend statistics from them.
type HistoryService struct {
	repo domain.ReadingRepository
}

// NewHistoryService creates a HistoryService backed by the given repository.
func NewHistoryService(repo domain.ReadingRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Stats holds aggregate statistics over the BMI values of a reading sequence.
type Stats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Last float64 `json:"last"`
}

// History returns a user's readings ordered by timestamp, id ascending.
func (s *HistoryService) History(ctx context.Context, userID int64) ([]domain.Reading, error) {
	return s.repo.ListReadings(ctx, userID)
}

// Stats folds an already-ordered reading sequence into aggregate statistics
// over BMI. Last is the final element of the sequence, not a re-sort by
// value. An empty sequence yields ErrNoData, never zeros.
func (s *HistoryService) Stats(readings []domain.Reading) (Stats, error) {
	if len(readings) == 0 {
		return Stats{}, domain.ErrNoData
	}

	st := Stats{
		Min:  readings[0].BMI,
		Max:  readings[0].BMI,
		Last: readings[len(readings)-1].BMI,
	}
	var sum float64
	for _, r := range readings {
		sum += r.BMI
		if r.BMI < st.Min {
			st.Min = r.BMI
		}
		if r.BMI > st.Max {
			st.Max = r.BMI
		}
	}
	st.Mean = sum / float64(len(readings))
	return st, nil
}

// Trend loads a user's history and computes its statistics in one call.
func (s *HistoryService) Trend(ctx context.Context, userID int64) (Stats, error) {
	readings, err := s.repo.ListReadings(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return s.Stats(readings)
}
