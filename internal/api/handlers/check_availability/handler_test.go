package check_availability

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Check(ctx context.Context, companyID, technicianID int64, candidate domain.Interval) (*domain.Verdict, error) {
	args := m.Called(ctx, companyID, technicianID, candidate)
	if v := args.Get(0); v != nil {
		return v.(*domain.Verdict), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc AvailabilityService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/companies/{companyId}/technicians/{technicianId}/availability",
		NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

const checkURL = "/companies/1/technicians/5/availability?start=2026-10-12T10:00:00Z&end=2026-10-12T11:00:00Z"

func TestHandle_BookedVerdict(t *testing.T) {
	svc := &mockService{}
	candidate := domain.Interval{
		Start: time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 12, 11, 0, 0, 0, time.UTC),
	}
	svc.On("Check", mock.Anything, int64(1), int64(5), mock.MatchedBy(func(c domain.Interval) bool {
		return c.Start.Equal(candidate.Start) && c.End.Equal(candidate.End)
	})).Return(&domain.Verdict{
		Reason:             domain.ReasonAlreadyBooked,
		ConflictingBooking: &domain.Booking{ID: 31},
	}, nil)

	rec := serve(svc, checkURL)

	require.Equal(t, http.StatusOK, rec.Code)
	var body VerdictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	assert.Equal(t, "already_booked", body.Reason)
	require.NotNil(t, body.ConflictingBookingID)
	assert.Equal(t, int64(31), *body.ConflictingBookingID)
	assert.Nil(t, body.ConflictingTimeOffID)
}

func TestHandle_AvailableVerdict(t *testing.T) {
	svc := &mockService{}
	verdict := domain.AvailableVerdict()
	svc.On("Check", mock.Anything, int64(1), int64(5), mock.Anything).Return(&verdict, nil)

	rec := serve(svc, checkURL)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available":true}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		svcErr     error
		wantStatus int
	}{
		{"missing end", "/companies/1/technicians/5/availability?start=2026-10-12T10:00:00Z", nil, http.StatusBadRequest},
		{"no offset", "/companies/1/technicians/5/availability?start=2026-10-12T10:00:00&end=2026-10-12T11:00:00Z", nil, http.StatusBadRequest},
		{"empty interval", checkURL, availability.ErrInvalidInput, http.StatusBadRequest},
		{"foreign technician", checkURL, availability.ErrTechnicianNotFound, http.StatusNotFound},
		{"store failure", checkURL, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := serve(svc, tt.url)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
