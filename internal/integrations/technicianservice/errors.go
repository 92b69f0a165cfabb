package technicianservice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrTechnicianNotFound возвращается, когда техник не найден или принадлежит другой компании
	ErrTechnicianNotFound = fmt.Errorf("%w: technician", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("technicianservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("technicianservice client: invalid response")
)
