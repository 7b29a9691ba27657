package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"bmitrack/internal/domain"
)

// exportHeader is the fixed column order of the CSV export.
var exportHeader = []string{"id", "timestamp", "weight", "height", "unit", "bmi", "category", "notes"}

// ExportService serializes reading histories to CSV.
type ExportService struct {
	repo domain.ReadingRepository
}

// NewExportService creates an ExportService backed by the given repository.
func NewExportService(repo domain.ReadingRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Write renders the readings as UTF-8 CSV in the caller-supplied order, one
// row per reading under a header row. Empty notes render as an empty cell.
// An empty sequence yields ErrNoData; no header-only file is ever written.
func (s *ExportService) Write(readings []domain.Reading, w io.Writer) error {
	if len(readings) == 0 {
		return domain.ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range readings {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Timestamp.UTC().Format(time.RFC3339),
			formatFloat(r.Weight),
			formatFloat(r.Height),
			string(r.Unit),
			formatFloat(r.BMI),
			r.Category,
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Export loads a user's full history and writes it to w, returning the
// number of rows written.
func (s *ExportService) Export(ctx context.Context, userID int64, w io.Writer) (int, error) {
	readings, err := s.repo.ListReadings(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.Write(readings, w); err != nil {
		return 0, err
	}
	return len(readings), nil
}

// formatFloat writes the shortest decimal representation that round-trips,
// so no stored precision is lost.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
