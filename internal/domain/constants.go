package domain

// Weekday bounds, 0 = Sunday as in time.Weekday
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// Slot search bounds
const (
	MinSearchDays     = 1
	MaxSearchDays     = 30 // caps worst-case scan cost
	DefaultSearchDays = 7
)

// MaxTimeOffReasonLength limits the free-text reason of a time-off entry.
const MaxTimeOffReasonLength = 500

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses work orders in these statuses never occupy a technician.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
