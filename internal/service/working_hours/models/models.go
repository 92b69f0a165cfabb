package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// AddRequest запрос на добавление шаблона рабочего времени
type AddRequest struct {
	CompanyID    int64            `json:"-"`
	TechnicianID int64            `json:"-"`
	DayOfWeek    int              `json:"dayOfWeek"`
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
}

// UpdateRequest запрос на частичное изменение записи
// Незаданные поля сохраняют текущее значение
type UpdateRequest struct {
	CompanyID    int64             `json:"-"`
	TechnicianID int64             `json:"-"`
	EntryID      int64             `json:"-"`
	DayOfWeek    *int              `json:"dayOfWeek,omitempty"`
	StartTime    *types.TimeString `json:"startTime,omitempty"`
	EndTime      *types.TimeString `json:"endTime,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не задано
func (r *UpdateRequest) IsEmpty() bool {
	return r.DayOfWeek == nil && r.StartTime == nil && r.EndTime == nil
}

// Apply применяет изменения к копии записи
func (r *UpdateRequest) Apply(entry *domain.WorkingHoursEntry) *domain.WorkingHoursEntry {
	updated := *entry
	if r.DayOfWeek != nil {
		updated.DayOfWeek = *r.DayOfWeek
	}
	if r.StartTime != nil {
		updated.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		updated.EndTime = *r.EndTime
	}
	return &updated
}

// Response модели

// EntryResponse запись рабочего времени
type EntryResponse struct {
	ID           int64            `json:"id"`
	TechnicianID int64            `json:"technicianId"`
	DayOfWeek    int              `json:"dayOfWeek"`
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ListResponse список записей техника
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует доменную запись в ответ
func FromDomainEntry(entry *domain.WorkingHoursEntry) *EntryResponse {
	return &EntryResponse{
		ID:           entry.ID,
		TechnicianID: entry.TechnicianID,
		DayOfWeek:    entry.DayOfWeek,
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

// FromDomainEntryList конвертирует список доменных записей
func FromDomainEntryList(entries []*domain.WorkingHoursEntry) *ListResponse {
	result := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, *FromDomainEntry(e))
	}
	return &ListResponse{Entries: result}
}
