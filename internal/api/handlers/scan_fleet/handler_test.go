package scan_fleet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scanFleet "github.com/m04kA/SMC-AvailabilityService/internal/usecase/scan_fleet"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *scanFleet.Request) (*scanFleet.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*scanFleet.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(uc ScanFleetUseCase, companyID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/companies/{companyId}/availability/scan",
		NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/companies/"+companyID+"/availability/scan", strings.NewReader(body)))
	return rec
}

func TestHandle_KeepsDirectoryOrder(t *testing.T) {
	start := time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *scanFleet.Request) bool {
		return req.CompanyID == 1 && req.Start.Equal(start) && req.End == nil &&
			req.ServiceCategory == "emergency" && req.DurationMinutes == nil
	})).Return(&scanFleet.Response{
		Candidate: domain.Interval{Start: start, End: start.Add(90 * time.Minute)},
		Technicians: []scanFleet.TechnicianAvailability{
			{TechnicianID: 10, Name: "Anna", Reason: domain.ReasonTimeOff},
			{TechnicianID: 20, Name: "Boris", Available: true},
			{TechnicianID: 30, Name: "Vera", Reason: domain.ReasonAlreadyBooked},
		},
	}, nil)

	rec := serve(uc, "1", `{"start":"2026-10-12T10:00:00Z","serviceCategory":"emergency"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Technicians, 3)
	assert.Equal(t, int64(10), body.Technicians[0].TechnicianID)
	assert.Equal(t, "time_off", body.Technicians[0].Reason)
	assert.True(t, body.Technicians[1].Available)
	assert.Empty(t, body.Technicians[1].Reason)
	assert.Equal(t, "2026-10-12T11:30:00Z", body.End)
	require.NotNil(t, body.FirstAvailableID)
	assert.Equal(t, int64(20), *body.FirstAvailableID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		companyID  string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"bad company", "abc", `{"start":"2026-10-12T10:00:00Z"}`, nil, http.StatusBadRequest},
		{"missing start", "1", `{}`, nil, http.StatusBadRequest},
		{"bad end", "1", `{"start":"2026-10-12T10:00:00Z","end":"tomorrow"}`, nil, http.StatusBadRequest},
		{"invalid request", "1", `{"start":"2026-10-12T10:00:00Z","durationMinutes":0}`, scanFleet.ErrInvalidInput, http.StatusBadRequest},
		{"unknown company", "1", `{"start":"2026-10-12T10:00:00Z"}`, domain.ErrNotFound, http.StatusNotFound},
		{"failure", "1", `{"start":"2026-10-12T10:00:00Z"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(uc, tt.companyID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
