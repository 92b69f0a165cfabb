package time_off

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	timeOff "github.com/m04kA/SMC-AvailabilityService/internal/service/time_off"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/time_off/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Add(ctx context.Context, req *models.AddRequest) (*models.EntryResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.EntryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, req *models.UpdateRequest) (*models.EntryResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.EntryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Remove(ctx context.Context, companyID, technicianID, entryID int64) error {
	return m.Called(ctx, companyID, technicianID, entryID).Error(0)
}

func (m *mockService) List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc TimeOffService, method, path, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	base := "/companies/{companyId}/technicians/{technicianId}/time-off"
	r.HandleFunc(base, h.List).Methods(http.MethodGet)
	r.HandleFunc(base, h.Add).Methods(http.MethodPost)
	r.HandleFunc(base+"/{entryId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc(base+"/{entryId}", h.Remove).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestAdd(t *testing.T) {
	svc := &mockService{}
	svc.On("Add", mock.Anything, mock.MatchedBy(func(req *models.AddRequest) bool {
		return req.TechnicianID == 5 &&
			req.StartAt.Equal(time.Date(2026, 10, 12, 6, 0, 0, 0, time.UTC)) &&
			req.EndAt.Equal(time.Date(2026, 10, 12, 6, 30, 0, 0, time.UTC)) &&
			req.Reason != nil && *req.Reason == "dentist"
	})).Return(&models.EntryResponse{ID: 4}, nil)

	rec := serve(svc, http.MethodPost, "/companies/1/technicians/5/time-off",
		`{"startAt":"2026-10-12T09:00:00+03:00","endAt":"2026-10-12T09:30:00+03:00","reason":"dentist"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestAdd_Errors(t *testing.T) {
	valid := `{"startAt":"2026-10-12T09:00:00Z","endAt":"2026-10-12T10:00:00Z"}`

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"missing end", `{"startAt":"2026-10-12T09:00:00Z"}`, nil, http.StatusBadRequest},
		{"date without offset", `{"startAt":"2026-10-12","endAt":"2026-10-13"}`, nil, http.StatusBadRequest},
		{"overlap", valid, &domain.OverlapError{Entity: "time_off", ConflictingID: 2}, http.StatusConflict},
		{"technician not found", valid, timeOff.ErrTechnicianNotFound, http.StatusNotFound},
		{"invalid", valid, timeOff.ErrInvalidInput, http.StatusBadRequest},
		{"internal", valid, timeOff.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("Add", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := serve(svc, http.MethodPost, "/companies/1/technicians/5/time-off", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestList_Range(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListRequest) bool {
		return req.From != nil && req.To == nil && req.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.ListResponse{Entries: []models.EntryResponse{}}, nil)

	rec := serve(svc, http.MethodGet, "/companies/1/technicians/5/time-off?from=2026-10-01T00:00:00Z", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(svc, http.MethodGet, "/companies/1/technicians/5/time-off?to=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "List", 1)
}

func TestUpdateAndRemove(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdateRequest) bool {
		return req.EntryID == 4 && req.StartAt == nil && req.EndAt == nil && req.Reason != nil && *req.Reason == ""
	})).Return(&models.EntryResponse{ID: 4}, nil)
	svc.On("Remove", mock.Anything, int64(1), int64(5), int64(4)).Return(timeOff.ErrEntryNotFound)

	rec := serve(svc, http.MethodPut, "/companies/1/technicians/5/time-off/4", `{"reason":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(svc, http.MethodDelete, "/companies/1/technicians/5/time-off/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
