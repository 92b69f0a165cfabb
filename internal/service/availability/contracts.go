package availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// WorkingHoursRepository интерфейс чтения шаблонов рабочего времени
type WorkingHoursRepository interface {
	ListByTechnician(ctx context.Context, technicianID int64) ([]*domain.WorkingHoursEntry, error)
}

// TimeOffRepository интерфейс чтения отсутствий
type TimeOffRepository interface {
	List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOffEntry, error)
}

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	ListActive(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TechnicianDirectory интерфейс справочника техников
type TechnicianDirectory interface {
	GetTechnician(ctx context.Context, companyID, technicianID int64) (*domain.Technician, error)
}

// MetricsRecorder интерфейс сборщика метрик проверок
type MetricsRecorder interface {
	IncAvailabilityCheck(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
