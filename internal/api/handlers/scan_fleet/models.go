package scan_fleet

import (
	"fmt"
	"time"

	scanFleet "github.com/m04kA/SMC-AvailabilityService/internal/usecase/scan_fleet"
)

// ScanRequest HTTP request model
type ScanRequest struct {
	Start           string  `json:"start"`         // RFC 3339 со смещением
	End             *string `json:"end,omitempty"` // приоритетнее durationMinutes
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	ServiceCategory string  `json:"serviceCategory,omitempty"`
}

// ScanResponse HTTP response model, technicians в порядке справочника
type ScanResponse struct {
	Start            string                   `json:"start"`
	End              string                   `json:"end"`
	Technicians      []TechnicianAvailability `json:"technicians"`
	FirstAvailableID *int64                   `json:"firstAvailableTechnicianId,omitempty"`
}

// TechnicianAvailability вердикт по технику
type TechnicianAvailability struct {
	TechnicianID int64  `json:"technicianId"`
	Name         string `json:"name"`
	Available    bool   `json:"available"`
	Reason       string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScanRequest) ToUseCaseRequest(companyID int64) (*scanFleet.Request, error) {
	if r.Start == "" {
		return nil, fmt.Errorf("start is required")
	}
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}

	req := &scanFleet.Request{
		CompanyID:       companyID,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		ServiceCategory: r.ServiceCategory,
	}

	if r.End != nil {
		end, err := time.Parse(time.RFC3339, *r.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end: %w", err)
		}
		req.End = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scanFleet.Response) *ScanResponse {
	out := &ScanResponse{
		Start:       resp.Candidate.Start.Format(time.RFC3339),
		End:         resp.Candidate.End.Format(time.RFC3339),
		Technicians: make([]TechnicianAvailability, 0, len(resp.Technicians)),
	}

	for _, t := range resp.Technicians {
		out.Technicians = append(out.Technicians, TechnicianAvailability{
			TechnicianID: t.TechnicianID,
			Name:         t.Name,
			Available:    t.Available,
			Reason:       string(t.Reason),
		})
	}

	if first := resp.FirstAvailable(); first != nil {
		id := first.TechnicianID
		out.FirstAvailableID = &id
	}

	return out
}
