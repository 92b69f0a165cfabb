package working_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	whRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/working_hours"
	techClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/technicianservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/working_hours/models"
)

const entityName = "working_hours"

// Service сервис шаблонов рабочего времени техников
// Гарантирует, что записи одного техника на один день недели не пересекаются
type Service struct {
	repo      WorkingHoursRepository
	directory TechnicianDirectory
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса рабочего времени
func NewService(
	repo WorkingHoursRepository,
	directory TechnicianDirectory,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		txManager: txManager,
		logger:    logger,
	}
}

// Add добавляет запись рабочего времени
// Проверка пересечений и запись выполняются под блокировкой техника в SERIALIZABLE транзакции
func (s *Service) Add(ctx context.Context, req *models.AddRequest) (*models.EntryResponse, error) {
	s.logger.Info("Add: company=%d, technician=%d, day=%d, %s-%s",
		req.CompanyID, req.TechnicianID, req.DayOfWeek, req.StartTime, req.EndTime)

	if err := s.checkTechnician(ctx, req.CompanyID, req.TechnicianID); err != nil {
		return nil, err
	}

	entry := &domain.WorkingHoursEntry{
		TechnicianID: req.TechnicianID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := entry.Validate(); err != nil {
		s.logger.Warn("Add: invalid entry for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.WorkingHoursEntry
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.repo.LockTechnician(ctx, req.TechnicianID); err != nil {
			return fmt.Errorf("%w: Add - lock technician: %v", ErrInternal, err)
		}

		if err := s.ensureNoOverlap(ctx, entry, 0); err != nil {
			return err
		}

		var err error
		created, err = s.repo.Create(ctx, entry)
		if err != nil {
			return s.mapRepoError("Add", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("Add", req.TechnicianID, err)
	}

	s.logger.Info("Add: created entry id=%d for technician=%d", created.ID, created.TechnicianID)
	return models.FromDomainEntry(created), nil
}

// Update частично изменяет запись
// Пересечения проверяются для итогового дня недели, сама запись из проверки исключается
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) (*models.EntryResponse, error) {
	s.logger.Info("Update: company=%d, technician=%d, entry=%d", req.CompanyID, req.TechnicianID, req.EntryID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.checkTechnician(ctx, req.CompanyID, req.TechnicianID); err != nil {
		return nil, err
	}

	var updated *domain.WorkingHoursEntry
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.repo.LockTechnician(ctx, req.TechnicianID); err != nil {
			return fmt.Errorf("%w: Update - lock technician: %v", ErrInternal, err)
		}

		existing, err := s.repo.GetByID(ctx, req.TechnicianID, req.EntryID)
		if err != nil {
			return s.mapRepoError("Update", err)
		}

		candidate := req.Apply(existing)
		if err := candidate.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.ensureNoOverlap(ctx, candidate, candidate.ID); err != nil {
			return err
		}

		updated, err = s.repo.Update(ctx, candidate)
		if err != nil {
			return s.mapRepoError("Update", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("Update", req.TechnicianID, err)
	}

	s.logger.Info("Update: updated entry id=%d for technician=%d", updated.ID, updated.TechnicianID)
	return models.FromDomainEntry(updated), nil
}

// Remove удаляет запись техника
func (s *Service) Remove(ctx context.Context, companyID, technicianID, entryID int64) error {
	s.logger.Info("Remove: company=%d, technician=%d, entry=%d", companyID, technicianID, entryID)

	if err := s.checkTechnician(ctx, companyID, technicianID); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.repo.LockTechnician(ctx, technicianID); err != nil {
			return fmt.Errorf("%w: Remove - lock technician: %v", ErrInternal, err)
		}
		if err := s.repo.Delete(ctx, technicianID, entryID); err != nil {
			return s.mapRepoError("Remove", err)
		}
		return nil
	})
	if err != nil {
		return s.logFailure("Remove", technicianID, err)
	}

	s.logger.Info("Remove: deleted entry id=%d for technician=%d", entryID, technicianID)
	return nil
}

// ListForTechnician возвращает записи техника, упорядоченные по (day_of_week, start_time)
func (s *Service) ListForTechnician(ctx context.Context, companyID, technicianID int64) (*models.ListResponse, error) {
	s.logger.Info("ListForTechnician: company=%d, technician=%d", companyID, technicianID)

	if err := s.checkTechnician(ctx, companyID, technicianID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByTechnician(ctx, technicianID)
	if err != nil {
		s.logger.Error("ListForTechnician: repository error for technician=%d: %v", technicianID, err)
		return nil, fmt.Errorf("%w: ListForTechnician - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries), nil
}

// Вспомогательные методы

// ensureNoOverlap ищет пересечение с соседними записями того же дня недели
func (s *Service) ensureNoOverlap(ctx context.Context, candidate *domain.WorkingHoursEntry, excludeID int64) error {
	siblings, err := s.repo.ListByTechnicianAndDay(ctx, candidate.TechnicianID, candidate.DayOfWeek)
	if err != nil {
		return fmt.Errorf("%w: ensureNoOverlap - repository error: %v", ErrInternal, err)
	}

	if conflict := domain.FindWorkingHoursConflict(siblings, candidate, excludeID); conflict != nil {
		return &domain.OverlapError{Entity: entityName, ConflictingID: conflict.ID}
	}

	return nil
}

// checkTechnician проверяет, что техник существует и принадлежит компании
func (s *Service) checkTechnician(ctx context.Context, companyID, technicianID int64) error {
	_, err := s.directory.GetTechnician(ctx, companyID, technicianID)
	if err == nil {
		return nil
	}
	if errors.Is(err, techClient.ErrTechnicianNotFound) {
		s.logger.Warn("checkTechnician: technician id=%d not found in company=%d", technicianID, companyID)
		return ErrTechnicianNotFound
	}
	s.logger.Error("checkTechnician: directory error for technician id=%d: %v", technicianID, err)
	return fmt.Errorf("%w: checkTechnician - directory error: %v", ErrInternal, err)
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, whRepo.ErrEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, whRepo.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// logFailure логирует ошибку с уровнем по её виду и возвращает её без изменений
func (s *Service) logFailure(op string, technicianID int64, err error) error {
	var overlap *domain.OverlapError
	switch {
	case errors.As(err, &overlap):
		s.logger.Warn("%s: technician=%d overlaps entry id=%d", op, technicianID, overlap.ConflictingID)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidArgument):
		s.logger.Warn("%s: technician=%d: %v", op, technicianID, err)
	default:
		s.logger.Error("%s: technician=%d: %v", op, technicianID, err)
	}
	return err
}
