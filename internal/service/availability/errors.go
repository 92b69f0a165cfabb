package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrTechnicianNotFound возвращается, когда техник не найден в компании
	ErrTechnicianNotFound = fmt.Errorf("%w: technician", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректном интервале кандидата
	ErrInvalidInput = fmt.Errorf("%w: candidate interval", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
