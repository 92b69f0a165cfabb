package find_next_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: slot search", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_next_slot.usecase: internal error")
)
