package scan_fleet

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TechnicianDirectory интерфейс справочника техников
type TechnicianDirectory interface {
	ListTechnicians(ctx context.Context, companyID int64) ([]*domain.Technician, error)
}

// AvailabilityChecker интерфейс проверки доступности уже загруженного техника
type AvailabilityChecker interface {
	CheckTechnician(ctx context.Context, technician *domain.Technician, candidate domain.Interval) (*domain.Verdict, error)
}

// MetricsRecorder интерфейс сборщика метрик обхода парка
type MetricsRecorder interface {
	ObserveFleetScan(technicians int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
