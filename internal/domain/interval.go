package domain

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates that end is strictly after start.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: interval end %s must be after start %s",
			ErrInvalidArgument, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// IntervalFromDuration builds [start, start+minutes).
func IntervalFromDuration(start time.Time, minutes int) (Interval, error) {
	if minutes <= 0 {
		return Interval{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidArgument, minutes)
	}
	return Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}, nil
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsEmpty reports whether the interval has no length.
func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

// Overlaps reports whether a and b share at least one instant.
// Touching endpoints do not overlap: [10:00, 11:00) and [11:00, 12:00) are disjoint.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Interval) bool {
	return !inner.Start.Before(outer.Start) && !outer.End.Before(inner.End)
}

// Overlaps is a method form of Overlaps.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

// Contains is a method form of Contains.
func (i Interval) Contains(inner Interval) bool {
	return Contains(i, inner)
}

// Subtract removes busy from every interval in free and returns what is left.
// The input must be sorted by start; the output keeps that order and drops empty pieces.
func Subtract(free []Interval, busy Interval) []Interval {
	result := make([]Interval, 0, len(free)+1)

	for _, f := range free {
		if !Overlaps(f, busy) {
			result = append(result, f)
			continue
		}
		if f.Start.Before(busy.Start) {
			result = append(result, Interval{Start: f.Start, End: busy.Start})
		}
		if busy.End.Before(f.End) {
			result = append(result, Interval{Start: busy.End, End: f.End})
		}
	}

	return result
}

// ClipStart drops everything before t.
func ClipStart(free []Interval, t time.Time) []Interval {
	result := make([]Interval, 0, len(free))
	for _, f := range free {
		if !f.End.After(t) {
			continue
		}
		if f.Start.Before(t) {
			f.Start = t
		}
		result = append(result, f)
	}
	return result
}

// SortIntervals orders intervals by start, then by end.
func SortIntervals(intervals []Interval) {
	sort.Slice(intervals, func(a, b int) bool {
		if intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].End.Before(intervals[b].End)
		}
		return intervals[a].Start.Before(intervals[b].Start)
	})
}
