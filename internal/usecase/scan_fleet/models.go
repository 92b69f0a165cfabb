package scan_fleet

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на проверку всех техников компании на один слот
// Конец слота определяется так: End, иначе Start + DurationMinutes,
// иначе Start + длительность по категории услуги
type Request struct {
	CompanyID       int64
	Start           time.Time
	End             *time.Time
	DurationMinutes *int
	ServiceCategory string
}

// Response модель ответа, порядок Technicians совпадает с порядком справочника
type Response struct {
	Candidate   domain.Interval
	Technicians []TechnicianAvailability
}

// TechnicianAvailability вердикт по одному технику
type TechnicianAvailability struct {
	TechnicianID int64
	Name         string
	Available    bool
	Reason       domain.UnavailableReason
}

// FirstAvailable возвращает первого по порядку справочника свободного техника или nil
func (r *Response) FirstAvailable() *TechnicianAvailability {
	for i := range r.Technicians {
		if r.Technicians[i].Available {
			return &r.Technicians[i]
		}
	}
	return nil
}

// AvailableCount возвращает число свободных техников
func (r *Response) AvailableCount() int {
	count := 0
	for _, t := range r.Technicians {
		if t.Available {
			count++
		}
	}
	return count
}
