package domain

import "time"

// BookingStatus is the status of a work order as seen by the engine.
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking is a read model over a work order assigned to a technician.
type Booking struct {
	ID              int64
	CompanyID       int64
	TechnicianID    int64
	ScheduledStart  time.Time
	DurationMinutes int
	Status          BookingStatus
	ServiceCategory string
}

// IsTerminal returns true for completed and cancelled work orders.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// OccupiesTime returns true if the booking blocks the technician calendar.
func (b *Booking) OccupiesTime() bool {
	return !b.IsTerminal() && b.DurationMinutes > 0
}

// Interval returns [ScheduledStart, ScheduledStart + DurationMinutes).
func (b *Booking) Interval() Interval {
	return Interval{
		Start: b.ScheduledStart,
		End:   b.ScheduledStart.Add(time.Duration(b.DurationMinutes) * time.Minute),
	}
}

// BookingsFilter selects bookings of a technician intersecting [From, To).
type BookingsFilter struct {
	TechnicianID int64
	From         *time.Time
	To           *time.Time
}
