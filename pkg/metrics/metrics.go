package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AvailabilityChecksTotal *prometheus.CounterVec
	SlotSearchesTotal       *prometheus.CounterVec
	SlotSearchDaysScanned   *prometheus.HistogramVec
	FleetScanSize           prometheus.Histogram
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Total number of failed database queries.",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "open_connections",
			Help:        "Number of established connections.",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		AvailabilityChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "availability",
			Name:        "checks_total",
			Help:        "Availability checks by verdict reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		SlotSearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "availability",
			Name:        "slot_searches_total",
			Help:        "Forward slot searches by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotSearchDaysScanned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "availability",
			Name:        "slot_search_days_scanned",
			Help:        "Number of days scanned per slot search.",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 5, 7, 14, 21, 30},
		}, []string{"outcome"}),

		FleetScanSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "availability",
			Name:        "fleet_scan_technicians",
			Help:        "Number of technicians evaluated per fleet scan.",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrorsTotal,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBWaitCount,
		m.AvailabilityChecksTotal,
		m.SlotSearchesTotal,
		m.SlotSearchDaysScanned,
		m.FleetScanSize,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(pool string, stats sql.DBStats) {
	m.DBOpenConnections.WithLabelValues(pool).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(pool).Set(float64(stats.InUse))
	m.DBWaitCount.WithLabelValues(pool).Set(float64(stats.WaitCount))
}

// IncAvailabilityCheck фиксирует вердикт проверки доступности
func (m *Metrics) IncAvailabilityCheck(reason string) {
	m.AvailabilityChecksTotal.WithLabelValues(reason).Inc()
}

// ObserveSlotSearch фиксирует результат поиска ближайшего слота
func (m *Metrics) ObserveSlotSearch(outcome string, daysScanned int) {
	m.SlotSearchesTotal.WithLabelValues(outcome).Inc()
	m.SlotSearchDaysScanned.WithLabelValues(outcome).Observe(float64(daysScanned))
}

// ObserveFleetScan фиксирует размер проверенного парка техников
func (m *Metrics) ObserveFleetScan(technicians int) {
	m.FleetScanSize.Observe(float64(technicians))
}

// Noop реализация без сбора метрик (когда метрики выключены в конфигурации)
type Noop struct{}

func (Noop) IncAvailabilityCheck(string) {}

func (Noop) ObserveSlotSearch(string, int) {}

func (Noop) ObserveFleetScan(int) {}

func (Noop) ObserveDBQuery(string, time.Duration, error) {}
