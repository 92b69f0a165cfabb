package check_availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type AvailabilityService interface {
	Check(ctx context.Context, companyID, technicianID int64, candidate domain.Interval) (*domain.Verdict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
