package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WorkingHoursEntry is a recurring weekly availability template of a technician.
type WorkingHoursEntry struct {
	ID           int64
	TechnicianID int64
	DayOfWeek    int // 0 = Sunday ... 6 = Saturday, same as time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the weekday and that StartTime < EndTime.
func (e *WorkingHoursEntry) Validate() error {
	if e.DayOfWeek < MinDayOfWeek || e.DayOfWeek > MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be in [%d,%d], got %d",
			ErrInvalidArgument, MinDayOfWeek, MaxDayOfWeek, e.DayOfWeek)
	}
	if err := e.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidArgument, err)
	}
	if err := e.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidArgument, err)
	}
	if !e.StartTime.IsBefore(e.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s",
			ErrInvalidArgument, e.StartTime, e.EndTime)
	}
	return nil
}

// Weekday returns the entry weekday as time.Weekday.
func (e *WorkingHoursEntry) Weekday() time.Weekday {
	return time.Weekday(e.DayOfWeek)
}

// Overlaps reports whether both entries are on the same weekday and their time ranges intersect.
func (e *WorkingHoursEntry) Overlaps(other *WorkingHoursEntry) bool {
	if e.DayOfWeek != other.DayOfWeek {
		return false
	}
	return e.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(e.EndTime)
}

// WindowOn materializes the template on a concrete calendar day in loc.
func (e *WorkingHoursEntry) WindowOn(date time.Time, loc *time.Location) Interval {
	return Interval{
		Start: e.StartTime.OnDate(date, loc),
		End:   e.EndTime.OnDate(date, loc),
	}
}

// FindWorkingHoursConflict returns the first sibling overlapping candidate, skipping the entry with excludeID.
// excludeID = 0 means nothing is skipped (new entries have no ID yet).
func FindWorkingHoursConflict(siblings []*WorkingHoursEntry, candidate *WorkingHoursEntry, excludeID int64) *WorkingHoursEntry {
	for _, sibling := range siblings {
		if excludeID != 0 && sibling.ID == excludeID {
			continue
		}
		if sibling.TechnicianID != candidate.TechnicianID {
			continue
		}
		if sibling.Overlaps(candidate) {
			return sibling
		}
	}
	return nil
}

// WorkingHoursForWeekday filters entries by weekday, keeping the input order.
func WorkingHoursForWeekday(entries []*WorkingHoursEntry, weekday time.Weekday) []*WorkingHoursEntry {
	result := make([]*WorkingHoursEntry, 0, len(entries))
	for _, e := range entries {
		if e.Weekday() == weekday {
			result = append(result, e)
		}
	}
	return result
}
