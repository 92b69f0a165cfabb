package time_off

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/time_off/models"
)

type TimeOffService interface {
	Add(ctx context.Context, req *models.AddRequest) (*models.EntryResponse, error)
	Update(ctx context.Context, req *models.UpdateRequest) (*models.EntryResponse, error)
	Remove(ctx context.Context, companyID, technicianID, entryID int64) error
	List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
