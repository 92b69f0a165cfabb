package time_off

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	toRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/time_off"
	techClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/technicianservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/time_off/models"
)

const entityName = "time_off"

// Service сервис периодов отсутствия техников
// Гарантирует, что периоды одного техника не пересекаются
type Service struct {
	repo      TimeOffRepository
	directory TechnicianDirectory
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса отсутствий
func NewService(
	repo TimeOffRepository,
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

// Add добавляет период отсутствия
func (s *Service) Add(ctx context.Context, req *models.AddRequest) (*models.EntryResponse, error) {
	s.logger.Info("Add: company=%d, technician=%d, %s - %s", req.CompanyID, req.TechnicianID,
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	if err := s.checkTechnician(ctx, req.CompanyID, req.TechnicianID); err != nil {
		return nil, err
	}

	entry := &domain.TimeOffEntry{
		TechnicianID: req.TechnicianID,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Reason:       req.Reason,
	}
	if err := entry.Validate(); err != nil {
		s.logger.Warn("Add: invalid entry for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.TimeOffEntry
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

// Update частично изменяет период, сама запись из проверки пересечений исключается
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) (*models.EntryResponse, error) {
	s.logger.Info("Update: company=%d, technician=%d, entry=%d", req.CompanyID, req.TechnicianID, req.EntryID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.checkTechnician(ctx, req.CompanyID, req.TechnicianID); err != nil {
		return nil, err
	}

	var updated *domain.TimeOffEntry
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

// Remove удаляет период техника
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

// List возвращает периоды, пересекающиеся с [From, To), упорядоченные по началу
// Незаданная граница означает открытый интервал
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error) {
	s.logger.Info("List: company=%d, technician=%d", req.CompanyID, req.TechnicianID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if err := s.checkTechnician(ctx, req.CompanyID, req.TechnicianID); err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, domain.TimeOffFilter{
		TechnicianID: req.TechnicianID,
		From:         req.From,
		To:           req.To,
	})
	if err != nil {
		s.logger.Error("List: repository error for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries), nil
}

// Вспомогательные методы

// ensureNoOverlap читает только периоды, задевающие кандидата, и ищет среди них конфликт
func (s *Service) ensureNoOverlap(ctx context.Context, candidate *domain.TimeOffEntry, excludeID int64) error {
	siblings, err := s.repo.List(ctx, domain.TimeOffFilter{
		TechnicianID: candidate.TechnicianID,
		From:         &candidate.StartAt,
		To:           &candidate.EndAt,
	})
	if err != nil {
		return fmt.Errorf("%w: ensureNoOverlap - repository error: %v", ErrInternal, err)
	}

	if conflict := domain.FindTimeOffConflict(siblings, candidate, excludeID); conflict != nil {
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
	case errors.Is(err, toRepo.ErrEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, toRepo.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

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
