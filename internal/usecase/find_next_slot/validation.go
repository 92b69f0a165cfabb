package find_next_slot

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	// Длительность сверху не ограничена: слишком длинный слот просто не найдется
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidInput, req.DurationMinutes)
	}

	if req.MaxDaysToSearch < domain.MinSearchDays || req.MaxDaysToSearch > domain.MaxSearchDays {
		return fmt.Errorf("%w: maxDaysToSearch must be in [%d, %d], got %d",
			ErrInvalidInput, domain.MinSearchDays, domain.MaxSearchDays, req.MaxDaysToSearch)
	}

	return nil
}
