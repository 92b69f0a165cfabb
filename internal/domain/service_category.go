package domain

import "strings"

// Default appointment durations by service category, minutes.
const (
	DurationRepair      = 60
	DurationReplacement = 120
	DurationEmergency   = 90
	DurationDefault     = 60
)

// categoryDurations is checked in order; the first keyword found in the category wins,
// so "emergency windshield repair" is sized as an emergency.
var categoryDurations = []struct {
	keyword string
	minutes int
}{
	{keyword: "emergency", minutes: DurationEmergency},
	{keyword: "replacement", minutes: DurationReplacement},
	{keyword: "repair", minutes: DurationRepair},
}

// DefaultDurationForCategory sizes an appointment from a free-form service category
// using a case-insensitive substring match.
func DefaultDurationForCategory(category string) int {
	normalized := strings.ToLower(category)
	for _, c := range categoryDurations {
		if strings.Contains(normalized, c.keyword) {
			return c.minutes
		}
	}
	return DurationDefault
}
