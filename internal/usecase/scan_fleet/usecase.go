package scan_fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const defaultConcurrency = 8

// UseCase use case проверки парка техников компании на один слот
type UseCase struct {
	directory   TechnicianDirectory
	checker     AvailabilityChecker
	metrics     MetricsRecorder
	logger      Logger
	concurrency int
}

// NewUseCase создает новый экземпляр use case
// concurrency ограничивает число одновременных проверок, при <= 0 используется значение по умолчанию
func NewUseCase(
	directory TechnicianDirectory,
	checker AvailabilityChecker,
	metrics MetricsRecorder,
	logger Logger,
	concurrency int,
) *UseCase {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &UseCase{
		directory:   directory,
		checker:     checker,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Execute проверяет всех техников компании на слот
// Проверки идут параллельно, но результат пишется по индексу, поэтому порядок совпадает со справочником
// Ошибка любой проверки прерывает весь обход
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScanFleet: company=%d, start=%s, category=%q",
		req.CompanyID, req.Start.Format(time.RFC3339), req.ServiceCategory)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScanFleet: validation failed: %v", err)
		return nil, err
	}

	// 2. Размер слота
	candidate, err := candidateInterval(req)
	if err != nil {
		uc.logger.Warn("ScanFleet: validation failed: %v", err)
		return nil, err
	}

	// 3. Техники компании в порядке справочника
	technicians, err := uc.directory.ListTechnicians(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ScanFleet: company=%d not found in directory", req.CompanyID)
			return nil, err
		}
		uc.logger.Error("ScanFleet: failed to list technicians of company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to list technicians: %v", ErrInternal, err)
	}

	// 4. Параллельные проверки с ограничением
	results := make([]TechnicianAvailability, len(technicians))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, technician := range technicians {
		g.Go(func() error {
			verdict, err := uc.checker.CheckTechnician(gctx, technician, candidate)
			if err != nil {
				return fmt.Errorf("technician id=%d: %w", technician.ID, err)
			}
			results[i] = TechnicianAvailability{
				TechnicianID: technician.ID,
				Name:         technician.Name,
				Available:    verdict.Available,
				Reason:       verdict.Reason,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("ScanFleet: company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	resp := &Response{Candidate: candidate, Technicians: results}
	uc.metrics.ObserveFleetScan(len(technicians))
	uc.logger.Info("ScanFleet: company=%d, %d of %d technicians available",
		req.CompanyID, resp.AvailableCount(), len(results))

	return resp, nil
}
