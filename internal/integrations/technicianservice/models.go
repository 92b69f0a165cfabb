package technicianservice

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Technician модель техника из справочника техников
type Technician struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone,omitempty"` // IANA, например "Europe/Moscow"
}

// TechniciansResponse ответ на список техников компании
type TechniciansResponse struct {
	Technicians []Technician `json:"technicians"`
}

// ErrorResponse модель ошибки от справочника техников
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует модель справочника в доменную модель
func (t Technician) ToDomain() *domain.Technician {
	return &domain.Technician{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Name:      t.Name,
		Timezone:  t.Timezone,
	}
}
