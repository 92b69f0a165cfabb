package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// AddRequest запрос на добавление периода отсутствия
type AddRequest struct {
	CompanyID    int64     `json:"-"`
	TechnicianID int64     `json:"-"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Reason       *string   `json:"reason,omitempty"`
}

// UpdateRequest запрос на частичное изменение периода
// Пустая строка в Reason очищает причину
type UpdateRequest struct {
	CompanyID    int64      `json:"-"`
	TechnicianID int64      `json:"-"`
	EntryID      int64      `json:"-"`
	StartAt      *time.Time `json:"startAt,omitempty"`
	EndAt        *time.Time `json:"endAt,omitempty"`
	Reason       *string    `json:"reason,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не задано
func (r *UpdateRequest) IsEmpty() bool {
	return r.StartAt == nil && r.EndAt == nil && r.Reason == nil
}

// Apply применяет изменения к копии записи
func (r *UpdateRequest) Apply(entry *domain.TimeOffEntry) *domain.TimeOffEntry {
	updated := *entry
	if r.StartAt != nil {
		updated.StartAt = *r.StartAt
	}
	if r.EndAt != nil {
		updated.EndAt = *r.EndAt
	}
	if r.Reason != nil {
		if *r.Reason == "" {
			updated.Reason = nil
		} else {
			reason := *r.Reason
			updated.Reason = &reason
		}
	}
	return &updated
}

// ListRequest запрос на список отсутствий, пересекающихся с [From, To)
type ListRequest struct {
	CompanyID    int64
	TechnicianID int64
	From         *time.Time
	To           *time.Time
}

// Response модели

// EntryResponse период отсутствия
type EntryResponse struct {
	ID           int64     `json:"id"`
	TechnicianID int64     `json:"technicianId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListResponse список периодов отсутствия
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует доменную запись в ответ
func FromDomainEntry(entry *domain.TimeOffEntry) *EntryResponse {
	return &EntryResponse{
		ID:           entry.ID,
		TechnicianID: entry.TechnicianID,
		StartAt:      entry.StartAt,
		EndAt:        entry.EndAt,
		Reason:       entry.Reason,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

// FromDomainEntryList конвертирует список доменных записей
func FromDomainEntryList(entries []*domain.TimeOffEntry) *ListResponse {
	result := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, *FromDomainEntry(e))
	}
	return &ListResponse{Entries: result}
}
