package find_next_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	findNextSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_next_slot"
)

// SlotResponse HTTP response model
// Отсутствие слота на горизонте отдается как 200 с found = false
type SlotResponse struct {
	Found       bool   `json:"found"`
	Start       string `json:"start,omitempty"` // RFC 3339 в часовом поясе техника
	End         string `json:"end,omitempty"`
	DaysScanned int    `json:"daysScanned"`
}

// ToUseCaseRequest формирует запрос к use case из параметров запроса
func ToUseCaseRequest(companyID, technicianID int64, startDate string, durationMinutes int, maxDays *int) (*findNextSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return nil, err
	}

	days := domain.DefaultSearchDays
	if maxDays != nil {
		days = *maxDays
	}

	return &findNextSlot.Request{
		CompanyID:       companyID,
		TechnicianID:    technicianID,
		StartDate:       date,
		DurationMinutes: durationMinutes,
		MaxDaysToSearch: days,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNextSlot.Response) *SlotResponse {
	out := &SlotResponse{
		Found:       resp.Found,
		DaysScanned: resp.DaysScanned,
	}
	if resp.Found && resp.Slot != nil {
		out.Start = resp.Slot.Start.Format(time.RFC3339)
		out.End = resp.Slot.End.Format(time.RFC3339)
	}
	return out
}
