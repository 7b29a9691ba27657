package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bmitrack/internal/domain"
)

// AddReading inserts a reading after verifying the owning user exists.
// The timestamp is stored as UTC Unix nanoseconds.
func (d *DB) AddReading(ctx context.Context, r domain.Reading) (int64, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ok, err := userExistsTx(ctx, tx, r.UserID)
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return 0, domain.ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO readings (user_id, timestamp, weight, height, unit, bmi, category, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Timestamp.UTC().UnixNano(), r.Weight, r.Height,
		string(r.Unit), r.BMI, r.Category, nullable(r.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// DeleteReading removes a single reading by id; no cascading effects.
func (d *DB) DeleteReading(ctx context.Context, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListReadings returns the user's readings ordered by timestamp, id
// ascending. An unknown user yields ErrNotFound.
func (d *DB) ListReadings(ctx context.Context, userID int64) ([]domain.Reading, error) {
	var one int
	err := d.sql.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, timestamp, weight, height, unit, bmi, category, notes
		 FROM readings WHERE user_id = ? ORDER BY timestamp, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	out := []domain.Reading{}
	for rows.Next() {
		var r domain.Reading
		var ts int64
		var unit string
		var notes sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &ts, &r.Weight, &r.Height, &unit, &r.BMI, &r.Category, &notes); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		r.Unit = domain.UnitSystem(unit)
		r.Notes = notes.String
		out = append(out, r)
	}
	return out, rows.Err()
}
