package check_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// VerdictResponse HTTP response model
type VerdictResponse struct {
	Available            bool   `json:"available"`
	Reason               string `json:"reason,omitempty"`
	ConflictingTimeOffID *int64 `json:"conflictingTimeOffId,omitempty"`
	ConflictingBookingID *int64 `json:"conflictingBookingId,omitempty"`
}

// FromVerdict конвертирует вердикт в HTTP response
func FromVerdict(v *domain.Verdict) *VerdictResponse {
	resp := &VerdictResponse{
		Available: v.Available,
		Reason:    string(v.Reason),
	}
	if v.ConflictingTimeOff != nil {
		id := v.ConflictingTimeOff.ID
		resp.ConflictingTimeOffID = &id
	}
	if v.ConflictingBooking != nil {
		id := v.ConflictingBooking.ID
		resp.ConflictingBookingID = &id
	}
	return resp
}
