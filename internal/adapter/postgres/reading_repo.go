package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bmitrack/internal/domain"
)

// AddReading inserts a reading after verifying the owning user exists.
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

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO readings (user_id, ts, weight, height, unit, bmi, category, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		r.UserID, r.Timestamp.UTC(), r.Weight, r.Height,
		string(r.Unit), r.BMI, r.Category, nullable(r.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reading: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// DeleteReading removes a single reading by id; no cascading effects.
func (d *DB) DeleteReading(ctx context.Context, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM readings WHERE id = $1;", id)
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
	err := d.sql.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = $1;", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, ts, weight, height, unit, bmi, category, notes
		 FROM readings WHERE user_id = $1 ORDER BY ts, id;`, userID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	out := []domain.Reading{}
	for rows.Next() {
		var r domain.Reading
		var unit string
		var notes sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &r.Timestamp, &r.Weight, &r.Height, &unit, &r.BMI, &r.Category, &notes); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.Timestamp = r.Timestamp.UTC()
		r.Unit = domain.UnitSystem(unit)
		r.Notes = notes.String
		out = append(out, r)
	}
	return out, rows.Err()
}
