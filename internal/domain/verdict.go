package domain

// UnavailableReason explains why a candidate interval cannot be booked.
type UnavailableReason string

const (
	ReasonNone                UnavailableReason = ""
	ReasonOutsideWorkingHours UnavailableReason = "outside_working_hours"
	ReasonTimeOff             UnavailableReason = "time_off"
	ReasonAlreadyBooked       UnavailableReason = "already_booked"
)

// Verdict is the outcome of resolving a candidate interval for one technician.
// At most one of the conflicting fields is set, matching Reason.
type Verdict struct {
	Available          bool
	Reason             UnavailableReason
	ConflictingTimeOff *TimeOffEntry
	ConflictingBooking *Booking
}

// Label returns a low-cardinality name of the verdict, used for metrics and logs.
func (v Verdict) Label() string {
	if v.Available {
		return "available"
	}
	return string(v.Reason)
}

// AvailableVerdict is the verdict of a free candidate.
func AvailableVerdict() Verdict {
	return Verdict{Available: true}
}
