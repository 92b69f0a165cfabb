package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID int64
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		method     string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{"get passes without header", http.MethodGet, "", http.StatusNoContent, 0},
		{"post without header", http.MethodPost, "", http.StatusUnauthorized, 0},
		{"post with garbage header", http.MethodPost, "abc", http.StatusUnauthorized, 0},
		{"delete with negative id", http.MethodDelete, "-4", http.StatusUnauthorized, 0},
		{"put with valid header", http.MethodPut, "42", http.StatusNoContent, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.header != "" {
				req.Header.Set(headerUserID, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("keeps incoming uuid", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(headerRequestID, incoming)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, rec.Header().Get(headerRequestID))
	})

	t.Run("generates when missing or malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(headerRequestID, "not-a-uuid")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(headerRequestID))
	})
}

type observation struct {
	method string
	route  string
	status int
}

type fakeHTTPRecorder struct {
	observed []observation
}

func (f *fakeHTTPRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeHTTPRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/technicians/{technicianId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/technicians/17", nil))

	require.Len(t, recorder.observed, 1)
	assert.Equal(t, observation{
		method: http.MethodGet,
		route:  "/technicians/{technicianId}",
		status: http.StatusTeapot,
	}, recorder.observed[0])
}
