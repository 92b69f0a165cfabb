package scan_fleet

import (
	"context"

	scanFleet "github.com/m04kA/SMC-AvailabilityService/internal/usecase/scan_fleet"
)

type ScanFleetUseCase interface {
	Execute(ctx context.Context, req *scanFleet.Request) (*scanFleet.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
