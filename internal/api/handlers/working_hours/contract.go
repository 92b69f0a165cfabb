package working_hours

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/working_hours/models"
)

type WorkingHoursService interface {
	Add(ctx context.Context, req *models.AddRequest) (*models.EntryResponse, error)
	Update(ctx context.Context, req *models.UpdateRequest) (*models.EntryResponse, error)
	Remove(ctx context.Context, companyID, technicianID, entryID int64) error
	ListForTechnician(ctx context.Context, companyID, technicianID int64) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
