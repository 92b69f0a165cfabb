package find_next_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	companyID    = int64(2)
	technicianID = int64(7)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeResolver struct {
	cal          *availability.Calendar
	loadedWindow domain.Interval
}

func (f *fakeResolver) ResolveTechnician(_ context.Context, company, tech int64) (*domain.Technician, *time.Location, error) {
	if company != f.cal.Technician.CompanyID || tech != f.cal.Technician.ID {
		return nil, nil, availability.ErrTechnicianNotFound
	}
	return f.cal.Technician, f.cal.Location, nil
}

func (f *fakeResolver) LoadCalendar(_ context.Context, _ *domain.Technician, _ *time.Location, window domain.Interval) (*availability.Calendar, error) {
	f.loadedWindow = window
	return f.cal, nil
}

// 13 Oct 2025 is a Monday.
func day(d, hour, minute int) time.Time {
	return time.Date(2025, 10, d, hour, minute, 0, 0, time.UTC)
}

func monWedFriMornings() *availability.Calendar {
	cal := &availability.Calendar{
		Technician: &domain.Technician{ID: technicianID, CompanyID: companyID},
		Location:   time.UTC,
	}
	for _, weekday := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		cal.WorkingHours = append(cal.WorkingHours, &domain.WorkingHoursEntry{
			ID:           int64(weekday),
			TechnicianID: technicianID,
			DayOfWeek:    int(weekday),
			StartTime:    types.MustTimeString("09:00"),
			EndTime:      types.MustTimeString("12:00"),
		})
	}
	return cal
}

func newUseCase(cal *availability.Calendar, now time.Time) (*UseCase, *fakeResolver) {
	resolver := &fakeResolver{cal: cal}
	uc := NewUseCase(resolver, metrics.Noop{}, logger.Nop()).WithTimeProvider(fixedTime{now: now})
	return uc, resolver
}

func request(startDate time.Time, duration, days int) *Request {
	return &Request{
		CompanyID:       companyID,
		TechnicianID:    technicianID,
		StartDate:       startDate,
		DurationMinutes: duration,
		MaxDaysToSearch: days,
	}
}

func TestExecute_NextWorkingDay(t *testing.T) {
	uc, resolver := newUseCase(monWedFriMornings(), day(13, 8, 0))

	// Tuesday has no hours, so the first fit is Wednesday morning.
	resp, err := uc.Execute(context.Background(), request(day(14, 0, 0), 90, 7))

	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, day(15, 9, 0), resp.Slot.Start)
	assert.Equal(t, day(15, 10, 30), resp.Slot.End)
	assert.Equal(t, 2, resp.DaysScanned)

	assert.Equal(t, day(14, 0, 0), resolver.loadedWindow.Start)
	assert.Equal(t, day(21, 0, 0), resolver.loadedWindow.End)
}

func TestExecute_DurationLongerThanAnyWindow(t *testing.T) {
	for _, minutes := range []int{240, 1500} {
		uc, _ := newUseCase(monWedFriMornings(), day(13, 8, 0))

		resp, err := uc.Execute(context.Background(), request(day(14, 0, 0), minutes, 7))

		require.NoError(t, err, "duration %d", minutes)
		assert.False(t, resp.Found)
		assert.Nil(t, resp.Slot)
		assert.Equal(t, 7, resp.DaysScanned)
	}
}

func TestExecute_SkipsBusyTime(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
		timeOff  []*domain.TimeOffEntry
		want     time.Time
	}{
		{
			name:     "booking at window start",
			bookings: []*domain.Booking{{ID: 1, TechnicianID: technicianID, ScheduledStart: day(15, 9, 0), DurationMinutes: 60, Status: domain.StatusScheduled}},
			want:     day(15, 10, 0),
		},
		{
			name:     "cancelled booking is ignored",
			bookings: []*domain.Booking{{ID: 1, TechnicianID: technicianID, ScheduledStart: day(15, 9, 0), DurationMinutes: 60, Status: domain.StatusCancelled}},
			want:     day(15, 9, 0),
		},
		{
			name:    "time off leaves only short gaps",
			timeOff: []*domain.TimeOffEntry{{ID: 1, TechnicianID: technicianID, StartAt: day(15, 9, 30), EndAt: day(15, 11, 0)}},
			want:    day(17, 9, 0),
		},
		{
			name:    "multi-day time off",
			timeOff: []*domain.TimeOffEntry{{ID: 1, TechnicianID: technicianID, StartAt: day(14, 12, 0), EndAt: day(17, 10, 0)}},
			want:    day(17, 10, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := monWedFriMornings()
			cal.Bookings = tt.bookings
			cal.TimeOff = tt.timeOff
			uc, _ := newUseCase(cal, day(13, 8, 0))

			resp, err := uc.Execute(context.Background(), request(day(14, 0, 0), 90, 7))

			require.NoError(t, err)
			require.True(t, resp.Found)
			assert.Equal(t, tt.want, resp.Slot.Start)
			assert.Equal(t, 90*time.Minute, resp.Slot.Duration())
		})
	}
}

func TestExecute_NoSlotsInThePast(t *testing.T) {
	// Now is Monday 10:20:30: the search rounds up to 10:21.
	uc, _ := newUseCase(monWedFriMornings(), time.Date(2025, 10, 13, 10, 20, 30, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), request(day(13, 0, 0), 60, 3))
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, day(13, 10, 21), resp.Slot.Start)

	// Starting a week back only yields future slots.
	resp, err = uc.Execute(context.Background(), request(day(6, 0, 0), 120, 10))
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, day(15, 9, 0), resp.Slot.Start)
}

func TestExecute_TechnicianLocation(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	cal := monWedFriMornings()
	cal.Location = plus3
	uc, _ := newUseCase(cal, day(13, 0, 0))

	resp, err := uc.Execute(context.Background(), request(day(14, 0, 0), 60, 7))

	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.True(t, resp.Slot.Start.Equal(time.Date(2025, 10, 15, 9, 0, 0, 0, plus3)))
	assert.True(t, resp.Slot.Start.Equal(day(15, 6, 0)))
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase(monWedFriMornings(), day(13, 8, 0))

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero duration", req: request(day(14, 0, 0), 0, 7)},
		{name: "negative duration", req: request(day(14, 0, 0), -30, 7)},
		{name: "zero days", req: request(day(14, 0, 0), 60, 0)},
		{name: "too many days", req: request(day(14, 0, 0), 60, 31)},
		{name: "missing start date", req: request(time.Time{}, 60, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID: 3, TechnicianID: technicianID, StartDate: day(14, 0, 0), DurationMinutes: 60, MaxDaysToSearch: 7,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCeilMinute(t *testing.T) {
	assert.Equal(t, day(13, 10, 0), ceilMinute(day(13, 10, 0)))
	assert.Equal(t, day(13, 10, 1), ceilMinute(day(13, 10, 0).Add(time.Nanosecond)))
}
