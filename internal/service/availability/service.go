package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	techClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/technicianservice"
)

// Resolver сервис проверки доступности техника
// Только читает данные, никаких блокировок не берет
type Resolver struct {
	workingHours    WorkingHoursRepository
	timeOff         TimeOffRepository
	bookings        BookingRepository
	directory       TechnicianDirectory
	metrics         MetricsRecorder
	logger          Logger
	defaultLocation *time.Location
}

// NewResolver создает новый экземпляр сервиса доступности
// defaultLocation применяется к техникам без часового пояса в справочнике
func NewResolver(
	workingHours WorkingHoursRepository,
	timeOff TimeOffRepository,
	bookings BookingRepository,
	directory TechnicianDirectory,
	metrics MetricsRecorder,
	logger Logger,
	defaultLocation *time.Location,
) *Resolver {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Resolver{
		workingHours:    workingHours,
		timeOff:         timeOff,
		bookings:        bookings,
		directory:       directory,
		metrics:         metrics,
		logger:          logger,
		defaultLocation: defaultLocation,
	}
}

// Check проверяет, свободен ли техник на интервале candidate
// Вызов идемпотентен и не имеет побочных эффектов, кроме метрик
func (r *Resolver) Check(ctx context.Context, companyID, technicianID int64, candidate domain.Interval) (*domain.Verdict, error) {
	r.logger.Info("Check: company=%d, technician=%d, candidate=%s - %s", companyID, technicianID,
		candidate.Start.Format(time.RFC3339), candidate.End.Format(time.RFC3339))

	if candidate.IsEmpty() {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	technician, loc, err := r.ResolveTechnician(ctx, companyID, technicianID)
	if err != nil {
		return nil, err
	}

	return r.checkResolved(ctx, technician, loc, candidate)
}

// CheckTechnician проверяет уже полученного из справочника техника
// Используется при обходе парка, когда список техников уже загружен
func (r *Resolver) CheckTechnician(ctx context.Context, technician *domain.Technician, candidate domain.Interval) (*domain.Verdict, error) {
	if candidate.IsEmpty() {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	loc, err := r.location(technician)
	if err != nil {
		return nil, err
	}

	return r.checkResolved(ctx, technician, loc, candidate)
}

func (r *Resolver) checkResolved(ctx context.Context, technician *domain.Technician, loc *time.Location, candidate domain.Interval) (*domain.Verdict, error) {
	cal, err := r.LoadCalendar(ctx, technician, loc, candidate)
	if err != nil {
		return nil, err
	}

	verdict := Evaluate(cal, candidate)
	r.metrics.IncAvailabilityCheck(verdict.Label())

	r.logger.Info("Check: technician=%d verdict=%s", technician.ID, verdict.Label())
	return &verdict, nil
}

// ResolveTechnician получает техника компании и его часовой пояс
func (r *Resolver) ResolveTechnician(ctx context.Context, companyID, technicianID int64) (*domain.Technician, *time.Location, error) {
	technician, err := r.directory.GetTechnician(ctx, companyID, technicianID)
	if err != nil {
		if errors.Is(err, techClient.ErrTechnicianNotFound) {
			r.logger.Warn("ResolveTechnician: technician id=%d not found in company=%d", technicianID, companyID)
			return nil, nil, ErrTechnicianNotFound
		}
		r.logger.Error("ResolveTechnician: directory error for technician id=%d: %v", technicianID, err)
		return nil, nil, fmt.Errorf("%w: ResolveTechnician - directory error: %v", ErrInternal, err)
	}

	loc, err := r.location(technician)
	if err != nil {
		return nil, nil, err
	}

	return technician, loc, nil
}

// LoadCalendar загружает рабочее время техника, а также отсутствия и активные бронирования внутри window
func (r *Resolver) LoadCalendar(ctx context.Context, technician *domain.Technician, loc *time.Location, window domain.Interval) (*Calendar, error) {
	workingHours, err := r.workingHours.ListByTechnician(ctx, technician.ID)
	if err != nil {
		r.logger.Error("LoadCalendar: working hours error for technician=%d: %v", technician.ID, err)
		return nil, fmt.Errorf("%w: LoadCalendar - working hours: %v", ErrInternal, err)
	}

	timeOff, err := r.timeOff.List(ctx, domain.TimeOffFilter{
		TechnicianID: technician.ID,
		From:         &window.Start,
		To:           &window.End,
	})
	if err != nil {
		r.logger.Error("LoadCalendar: time off error for technician=%d: %v", technician.ID, err)
		return nil, fmt.Errorf("%w: LoadCalendar - time off: %v", ErrInternal, err)
	}

	bookings, err := r.bookings.ListActive(ctx, domain.BookingsFilter{
		TechnicianID: technician.ID,
		From:         &window.Start,
		To:           &window.End,
	})
	if err != nil {
		r.logger.Error("LoadCalendar: bookings error for technician=%d: %v", technician.ID, err)
		return nil, fmt.Errorf("%w: LoadCalendar - bookings: %v", ErrInternal, err)
	}

	return &Calendar{
		Technician:   technician,
		Location:     loc,
		Window:       window,
		WorkingHours: workingHours,
		TimeOff:      timeOff,
		Bookings:     bookings,
	}, nil
}

func (r *Resolver) location(technician *domain.Technician) (*time.Location, error) {
	loc, err := technician.Location(r.defaultLocation)
	if err != nil {
		r.logger.Error("location: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return loc, nil
}
