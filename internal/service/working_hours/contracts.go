package working_hours

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочего времени
type WorkingHoursRepository interface {
	LockTechnician(ctx context.Context, technicianID int64) error
	Create(ctx context.Context, entry *domain.WorkingHoursEntry) (*domain.WorkingHoursEntry, error)
	GetByID(ctx context.Context, technicianID, id int64) (*domain.WorkingHoursEntry, error)
	ListByTechnician(ctx context.Context, technicianID int64) ([]*domain.WorkingHoursEntry, error)
	ListByTechnicianAndDay(ctx context.Context, technicianID int64, dayOfWeek int) ([]*domain.WorkingHoursEntry, error)
	Update(ctx context.Context, entry *domain.WorkingHoursEntry) (*domain.WorkingHoursEntry, error)
	Delete(ctx context.Context, technicianID, id int64) error
}

// TechnicianDirectory интерфейс справочника техников
type TechnicianDirectory interface {
	GetTechnician(ctx context.Context, companyID, technicianID int64) (*domain.Technician, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
