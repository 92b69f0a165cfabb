package availability

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	techClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/technicianservice"
)

type fakeStore struct {
	technicians  []*domain.Technician
	workingHours []*domain.WorkingHoursEntry
	timeOff      []*domain.TimeOffEntry
	bookings     []*domain.Booking
	err          error
}

func (f *fakeStore) GetTechnician(_ context.Context, companyID, technicianID int64) (*domain.Technician, error) {
	for _, t := range f.technicians {
		if t.ID == technicianID && t.CompanyID == companyID {
			return t, nil
		}
	}
	return nil, techClient.ErrTechnicianNotFound
}

func (f *fakeStore) ListByTechnician(_ context.Context, technicianID int64) ([]*domain.WorkingHoursEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.WorkingHoursEntry, 0)
	for _, e := range f.workingHours {
		if e.TechnicianID == technicianID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeStore) List(_ context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOffEntry, error) {
	result := make([]*domain.TimeOffEntry, 0)
	for _, e := range f.timeOff {
		if e.TechnicianID != filter.TechnicianID {
			continue
		}
		if filter.From != nil && !e.EndAt.After(*filter.From) {
			continue
		}
		if filter.To != nil && !e.StartAt.Before(*filter.To) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeStore) ListActive(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.TechnicianID != filter.TechnicianID || !b.OccupiesTime() {
			continue
		}
		window := domain.Interval{Start: *filter.From, End: *filter.To}
		if domain.Overlaps(b.Interval(), window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type countingMetrics struct {
	mu     sync.Mutex
	checks map[string]int
}

func (m *countingMetrics) IncAvailabilityCheck(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checks == nil {
		m.checks = make(map[string]int)
	}
	m.checks[reason]++
}
