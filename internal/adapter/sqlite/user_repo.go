package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bmitrack/internal/domain"
)

// CreateUser inserts a new user, rejecting case-insensitive name collisions.
func (d *DB) CreateUser(ctx context.Context, name, dob string) (int64, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE name = ? COLLATE NOCASE", name).Scan(&existing)
	if err == nil {
		return 0, domain.ErrDuplicateUser
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("check name: %w", err)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO users (name, dob) VALUES (?, ?)", name, nullable(dob))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
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

// RenameUser changes a user's name. Renaming to the current name succeeds;
// colliding with a different user's name fails.
func (d *DB) RenameUser(ctx context.Context, id int64, name string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ok, err := userExistsTx(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}

	var otherID int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE name = ? COLLATE NOCASE AND id <> ?", name, id).Scan(&otherID)
	if err == nil {
		return domain.ErrDuplicateUser
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check name: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE users SET name = ? WHERE id = ?", name, id); err != nil {
		return fmt.Errorf("rename user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteUser removes the user and all owned readings in one transaction,
// returning the number of readings deleted with it.
func (d *DB) DeleteUser(ctx context.Context, id int64) (int64, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ok, err := userExistsTx(ctx, tx, id)
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return 0, domain.ErrNotFound
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM readings WHERE user_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete readings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// ListUsers returns all users ordered by name, case-insensitive.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, dob FROM users ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var dob sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &dob); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.DOB = dob.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetUser returns a user by id.
func (d *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	var dob sql.NullString
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, dob FROM users WHERE id = ?", id).Scan(&u.ID, &u.Name, &dob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.DOB = dob.String
	return &u, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
