package domain

import "errors"

var (
	// ErrDuplicateUser indicates a case-insensitive user name collision.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrNotFound indicates an unknown user or reading id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a non-positive or non-finite weight or height.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation indicates a value outside the advisory plausibility range.
	ErrValidation = errors.New("value out of range")
	// ErrNoData indicates statistics or export were requested on an empty
	// reading set.
	ErrNoData = errors.New("no readings")
)
