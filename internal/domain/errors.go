package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup of a row that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks input that breaks a model rule.
	ErrInvalid = errors.New("invalid")
	// ErrCycle marks a parent assignment that would close a loop.
	ErrCycle = errors.New("cycle in hierarchy")
)

// NotFound wraps ErrNotFound with the entity kind and id.
func NotFound(kind Kind, id int64) error {
	return fmt.Errorf("%s %d: %w", kind.Label(), id, ErrNotFound)
}

// Invalidf wraps ErrInvalid with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}
