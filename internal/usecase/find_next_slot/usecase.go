package find_next_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// UseCase use case поиска ближайшего свободного слота техника
type UseCase struct {
	resolver     AvailabilityService
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver AvailabilityService,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:     resolver,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет поиск самого раннего слота длительностью DurationMinutes
// в днях [StartDate, StartDate + MaxDaysToSearch - 1] по часовому поясу техника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNextSlot: company=%d, technician=%d, startDate=%s, duration=%d, maxDays=%d",
		req.CompanyID, req.TechnicianID, req.StartDate.Format(domain.DateFormat), req.DurationMinutes, req.MaxDaysToSearch)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Техник и его часовой пояс
	technician, loc, err := uc.resolver.ResolveTechnician(ctx, req.CompanyID, req.TechnicianID)
	if err != nil {
		return nil, err
	}

	// 3. Слоты в прошлом не предлагаем, "сейчас" округляем до минуты вверх
	now := ceilMinute(uc.timeProvider.Now())

	// 4. Календарь на весь горизонт одним заходом
	firstDay := startOfDay(req.StartDate, loc)
	horizon := domain.Interval{Start: firstDay, End: firstDay.AddDate(0, 0, req.MaxDaysToSearch)}

	cal, err := uc.resolver.LoadCalendar(ctx, technician, loc, horizon)
	if err != nil {
		return nil, err
	}

	// 5. Перебираем дни по порядку, первый подходящий слот и есть самый ранний
	duration := time.Duration(req.DurationMinutes) * time.Minute
	for i := 0; i < req.MaxDaysToSearch; i++ {
		day := firstDay.AddDate(0, 0, i)
		if !day.AddDate(0, 0, 1).After(now) {
			continue
		}

		candidate, ok := earliestFit(freeWindows(cal, day, now), duration)
		if !ok {
			continue
		}

		// Проверка тем же предикатом, что и Check, чтобы поиск и проверка не расходились
		if verdict := availability.Evaluate(cal, candidate); !verdict.Available {
			uc.logger.Error("FindNextSlot: candidate %s rejected by resolver with reason=%s",
				candidate.Start.Format(time.RFC3339), verdict.Reason)
			continue
		}

		uc.metrics.ObserveSlotSearch(outcomeFound, i+1)
		uc.logger.Info("FindNextSlot: technician=%d slot found %s - %s", req.TechnicianID,
			candidate.Start.Format(time.RFC3339), candidate.End.Format(time.RFC3339))

		return &Response{Slot: &candidate, Found: true, DaysScanned: i + 1}, nil
	}

	uc.metrics.ObserveSlotSearch(outcomeNotFound, req.MaxDaysToSearch)
	uc.logger.Info("FindNextSlot: technician=%d no slot of %d minutes within %d days",
		req.TechnicianID, req.DurationMinutes, req.MaxDaysToSearch)

	return &Response{Found: false, DaysScanned: req.MaxDaysToSearch}, nil
}
