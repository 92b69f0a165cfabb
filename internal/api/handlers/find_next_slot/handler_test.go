package find_next_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	findNextSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_next_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *findNextSlot.Request) (*findNextSlot.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*findNextSlot.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(uc FindNextSlotUseCase, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/companies/{companyId}/technicians/{technicianId}/next-slot",
		NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_Found(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *findNextSlot.Request) bool {
		return req.CompanyID == 1 && req.TechnicianID == 5 &&
			req.StartDate.Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)) &&
			req.DurationMinutes == 90 && req.MaxDaysToSearch == domain.DefaultSearchDays
	})).Return(&findNextSlot.Response{
		Slot:        &domain.Interval{Start: start, End: start.Add(90 * time.Minute)},
		Found:       true,
		DaysScanned: 2,
	}, nil)

	rec := serve(uc, "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=90")

	require.Equal(t, http.StatusOK, rec.Code)
	var body SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Found)
	assert.Equal(t, "2026-10-15T09:00:00Z", body.Start)
	assert.Equal(t, "2026-10-15T10:30:00Z", body.End)
	assert.Equal(t, 2, body.DaysScanned)
	uc.AssertExpectations(t)
}

func TestHandle_NotFoundIsOK(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&findNextSlot.Response{DaysScanned: 3}, nil)

	rec := serve(uc, "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=240&maxDays=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false,"daysScanned":3}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		ucErr      error
		wantStatus int
	}{
		{"missing date", "/companies/1/technicians/5/next-slot?durationMinutes=60", nil, http.StatusBadRequest},
		{"bad date", "/companies/1/technicians/5/next-slot?startDate=14.10.2026&durationMinutes=60", nil, http.StatusBadRequest},
		{"missing duration", "/companies/1/technicians/5/next-slot?startDate=2026-10-14", nil, http.StatusBadRequest},
		{"bad max days", "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=60&maxDays=x", nil, http.StatusBadRequest},
		{"horizon out of range", "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=60&maxDays=31",
			findNextSlot.ErrInvalidInput, http.StatusBadRequest},
		{"unknown technician", "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=60",
			availability.ErrTechnicianNotFound, http.StatusNotFound},
		{"internal", "/companies/1/technicians/5/next-slot?startDate=2026-10-14&durationMinutes=60",
			findNextSlot.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(uc, tt.url)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
