package find_next_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// AvailabilityService интерфейс сервиса доступности
// Поиск читает календарь одним запросом на весь горизонт
type AvailabilityService interface {
	ResolveTechnician(ctx context.Context, companyID, technicianID int64) (*domain.Technician, *time.Location, error)
	LoadCalendar(ctx context.Context, technician *domain.Technician, loc *time.Location, window domain.Interval) (*availability.Calendar, error)
}

// MetricsRecorder интерфейс сборщика метрик поиска
type MetricsRecorder interface {
	ObserveSlotSearch(outcome string, daysScanned int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
