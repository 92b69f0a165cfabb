package technicianservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func newDirectory(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/companies/2/technicians", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"technicians":[
			{"id":10,"companyId":2,"name":"Anna","timezone":"Europe/Moscow"},
			{"id":11,"companyId":3,"name":"Stranger"},
			{"id":12,"companyId":2,"name":"Boris"}
		]}`))
	})
	mux.HandleFunc("/internal/companies/2/technicians/10", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(`{"id":10,"companyId":2,"name":"Anna","timezone":"Europe/Moscow"}`))
	})
	mux.HandleFunc("/internal/companies/2/technicians/11", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(`{"id":11,"companyId":3,"name":"Stranger"}`))
	})
	mux.HandleFunc("/internal/companies/2/technicians/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListTechnicians_KeepsOrderAndTenant(t *testing.T) {
	var calls int32
	srv := newDirectory(t, &calls)
	client := NewClient(srv.URL, time.Second, logger.Nop())

	technicians, err := client.ListTechnicians(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, technicians, 2)
	assert.Equal(t, int64(10), technicians[0].ID)
	assert.Equal(t, "Europe/Moscow", technicians[0].Timezone)
	assert.Equal(t, int64(12), technicians[1].ID)
}

func TestClient_GetTechnician(t *testing.T) {
	var calls int32
	srv := newDirectory(t, &calls)
	client := NewClient(srv.URL+"/", time.Second, logger.Nop())
	ctx := context.Background()

	technician, err := client.GetTechnician(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "Anna", technician.Name)

	_, err = client.GetTechnician(ctx, 2, 11)
	assert.ErrorIs(t, err, ErrTechnicianNotFound, "foreign technician must look missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = client.GetTechnician(ctx, 2, 404)
	assert.ErrorIs(t, err, ErrTechnicianNotFound)

	_, err = client.GetTechnician(ctx, 2, 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_RedisCache(t *testing.T) {
	var calls int32
	srv := newDirectory(t, &calls)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := NewClient(srv.URL, time.Second, logger.Nop())
	client.UseRedisCache(rdb, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		technicians, err := client.ListTechnicians(ctx, 2)
		require.NoError(t, err)
		require.Len(t, technicians, 2)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "only the first call reaches the directory")
	assert.True(t, mr.Exists("technicians:2"))

	mr.FastForward(2 * time.Minute)
	_, err := client.ListTechnicians(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "expired entry is refetched")
}

func TestClient_RedisUnavailable_FallsBackToHTTP(t *testing.T) {
	var calls int32
	srv := newDirectory(t, &calls)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	client.UseRedisCache(rdb, time.Minute)

	technician, err := client.GetTechnician(context.Background(), 2, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), technician.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
