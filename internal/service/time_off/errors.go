package time_off

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrEntryNotFound возвращается, когда запись не найдена у указанного техника
	ErrEntryNotFound = fmt.Errorf("%w: time off entry", domain.ErrNotFound)

	// ErrTechnicianNotFound возвращается, когда техник не найден в компании
	ErrTechnicianNotFound = fmt.Errorf("%w: technician", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: time off", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("time_off.service: internal error")
)
