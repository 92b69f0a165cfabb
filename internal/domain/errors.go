package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer of the engine.
// Package-level sentinels wrap these so callers can match on the kind with errors.Is.
// A search that finds nothing is not an error: it returns a result with Found=false.
var (
	// ErrInvalidArgument a semantically invalid value (bad weekday, end before start, horizon out of range)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound the entity does not exist or belongs to another company
	ErrNotFound = errors.New("not found")

	// ErrOverlap a new or updated entry overlaps a sibling entry of the same technician
	ErrOverlap = errors.New("overlap")
)

// OverlapError names the sibling entry that blocks a write.
type OverlapError struct {
	Entity        string // "working_hours" or "time_off"
	ConflictingID int64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s entry overlaps existing entry id=%d", e.Entity, e.ConflictingID)
}

// Unwrap allows errors.Is(err, ErrOverlap).
func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}
