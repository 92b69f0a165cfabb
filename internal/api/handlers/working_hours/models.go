package working_hours

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/working_hours/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AddWorkingHoursRequest HTTP request model
type AddWorkingHoursRequest struct {
	DayOfWeek *int   `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// UpdateWorkingHoursRequest HTTP request model, отсутствующие поля не меняются
type UpdateWorkingHoursRequest struct {
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddWorkingHoursRequest) ToServiceRequest(companyID, technicianID int64) (*models.AddRequest, error) {
	if r.DayOfWeek == nil {
		return nil, errors.New("dayOfWeek is required")
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.AddRequest{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		DayOfWeek:    *r.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
	}, nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest(companyID, technicianID, entryID int64) (*models.UpdateRequest, error) {
	req := &models.UpdateRequest{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		EntryID:      entryID,
		DayOfWeek:    r.DayOfWeek,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
