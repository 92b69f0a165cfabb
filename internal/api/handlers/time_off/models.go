package time_off

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/time_off/models"
)

// AddTimeOffRequest HTTP request model
type AddTimeOffRequest struct {
	StartAt string  `json:"startAt"` // RFC 3339 со смещением
	EndAt   string  `json:"endAt"`
	Reason  *string `json:"reason,omitempty"`
}

// UpdateTimeOffRequest HTTP request model, пустая строка в reason очищает причину
type UpdateTimeOffRequest struct {
	StartAt *string `json:"startAt,omitempty"`
	EndAt   *string `json:"endAt,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddTimeOffRequest) ToServiceRequest(companyID, technicianID int64) (*models.AddRequest, error) {
	startAt, err := parseTimestamp("startAt", r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := parseTimestamp("endAt", r.EndAt)
	if err != nil {
		return nil, err
	}

	return &models.AddRequest{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		StartAt:      startAt,
		EndAt:        endAt,
		Reason:       r.Reason,
	}, nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateTimeOffRequest) ToServiceRequest(companyID, technicianID, entryID int64) (*models.UpdateRequest, error) {
	req := &models.UpdateRequest{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		EntryID:      entryID,
		Reason:       r.Reason,
	}

	if r.StartAt != nil {
		startAt, err := parseTimestamp("startAt", *r.StartAt)
		if err != nil {
			return nil, err
		}
		req.StartAt = &startAt
	}
	if r.EndAt != nil {
		endAt, err := parseTimestamp("endAt", *r.EndAt)
		if err != nil {
			return nil, err
		}
		req.EndAt = &endAt
	}

	return req, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return t, nil
}
