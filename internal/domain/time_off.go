package domain

import (
	"fmt"
	"time"
)

// TimeOffEntry is an ad-hoc absence of a technician, not tied to a weekday.
type TimeOffEntry struct {
	ID           int64
	TechnicianID int64
	StartAt      time.Time
	EndAt        time.Time
	Reason       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks that StartAt < EndAt and the reason length.
func (e *TimeOffEntry) Validate() error {
	if e.StartAt.IsZero() || e.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidArgument)
	}
	if !e.StartAt.Before(e.EndAt) {
		return fmt.Errorf("%w: startAt %s must be before endAt %s",
			ErrInvalidArgument, e.StartAt.Format(time.RFC3339), e.EndAt.Format(time.RFC3339))
	}
	if e.Reason != nil && len([]rune(*e.Reason)) > MaxTimeOffReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidArgument, MaxTimeOffReasonLength)
	}
	return nil
}

// Interval returns the absence as [StartAt, EndAt).
func (e *TimeOffEntry) Interval() Interval {
	return Interval{Start: e.StartAt, End: e.EndAt}
}

// FindTimeOffConflict returns the first sibling overlapping candidate, skipping the entry with excludeID.
func FindTimeOffConflict(siblings []*TimeOffEntry, candidate *TimeOffEntry, excludeID int64) *TimeOffEntry {
	for _, sibling := range siblings {
		if excludeID != 0 && sibling.ID == excludeID {
			continue
		}
		if sibling.TechnicianID != candidate.TechnicianID {
			continue
		}
		if Overlaps(sibling.Interval(), candidate.Interval()) {
			return sibling
		}
	}
	return nil
}

// TimeOffFilter limits a listing to entries intersecting [From, To]. Nil bounds are open.
type TimeOffFilter struct {
	TechnicianID int64
	From         *time.Time
	To           *time.Time
}
