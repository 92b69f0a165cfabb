package time_off

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TimeOffRepository интерфейс репозитория отсутствий
type TimeOffRepository interface {
	LockTechnician(ctx context.Context, technicianID int64) error
	Create(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error)
	GetByID(ctx context.Context, technicianID, id int64) (*domain.TimeOffEntry, error)
	List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOffEntry, error)
	Update(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error)
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
