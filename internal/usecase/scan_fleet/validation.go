package scan_fleet

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	return nil
}

// candidateInterval определяет проверяемый интервал
// Явный конец важнее длительности, длительность важнее категории услуги
// Длительность сверху не ограничена: слишком длинный слот вернет outside_working_hours
func candidateInterval(req *Request) (domain.Interval, error) {
	if req.End != nil {
		candidate, err := domain.NewInterval(req.Start, *req.End)
		if err != nil {
			return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return candidate, nil
	}

	minutes := domain.DefaultDurationForCategory(req.ServiceCategory)
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}

	candidate, err := domain.IntervalFromDuration(req.Start, minutes)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return candidate, nil
}
