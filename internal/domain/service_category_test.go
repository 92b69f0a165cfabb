package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDurationForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{category: "Windshield Repair", want: DurationRepair},
		{category: "windshield replacement", want: DurationReplacement},
		{category: "EMERGENCY", want: DurationEmergency},
		{category: "emergency chip repair", want: DurationEmergency},
		{category: "calibration", want: DurationDefault},
		{category: "", want: DurationDefault},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultDurationForCategory(tt.category))
		})
	}
}

func TestBooking_OccupiesTime(t *testing.T) {
	for _, status := range []BookingStatus{StatusScheduled, StatusConfirmed, StatusInProgress} {
		b := &Booking{Status: status, DurationMinutes: 60}
		assert.True(t, b.OccupiesTime(), status)
	}
	for _, status := range TerminalStatuses {
		b := &Booking{Status: status, DurationMinutes: 60}
		assert.False(t, b.OccupiesTime(), status)
	}

	b := &Booking{ScheduledStart: at(10, 0), DurationMinutes: 45, Status: StatusScheduled}
	assert.Equal(t, iv(10, 0, 10, 45), b.Interval())
}
