package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_availability"
	findNextSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/find_next_slot"
	scanFleetHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/scan_fleet"
	timeOffHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/time_off"
	workingHoursHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/working_hours"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	timeOffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/time_off"
	workingHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/working_hours"
	technicianServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/technicianservice"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	timeOffService "github.com/m04kA/SMC-AvailabilityService/internal/service/time_off"
	workingHoursService "github.com/m04kA/SMC-AvailabilityService/internal/service/working_hours"
	findNextSlotUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_next_slot"
	scanFleetUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/scan_fleet"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// engineMetrics метрики, которые движок пишет в сервисах и use cases
type engineMetrics interface {
	IncAvailabilityCheck(reason string)
	ObserveSlotSearch(outcome string, daysScanned int)
	ObserveFleetScan(technicians int)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")

	defaultLocation, err := cfg.Engine.DefaultLocation()
	if err != nil {
		log.Fatal("Failed to load default timezone %q: %v", cfg.Engine.DefaultTimezone, err)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		recorder         engineMetrics = metrics.Noop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка не пишет ничего, но транзакции работают одинаково
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Справочник техников
	technicianClient := technicianServiceClient.NewClient(
		cfg.TechnicianService.URL,
		time.Duration(cfg.TechnicianService.Timeout)*time.Second,
		log,
	)
	log.Info("Technician directory client initialized (url=%s, timeout=%ds)",
		cfg.TechnicianService.URL, cfg.TechnicianService.Timeout)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен, клиент сам уйдет в HTTP при ошибках Redis
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		technicianClient.UseRedisCache(redisClient, cfg.Redis.CacheTTL())
		log.Info("Technician directory cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.CacheTTL())
	}

	// Репозитории
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	timeOffRepository := timeOffRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Сервисы
	workingHoursSvc := workingHoursService.NewService(workingHoursRepository, technicianClient, txMgr, log)
	timeOffSvc := timeOffService.NewService(timeOffRepository, technicianClient, txMgr, log)
	resolver := availabilityService.NewResolver(
		workingHoursRepository,
		timeOffRepository,
		bookingRepository,
		technicianClient,
		recorder,
		log,
		defaultLocation,
	)

	// Use cases
	findNextSlotUseCase := findNextSlotUC.NewUseCase(resolver, recorder, log)
	scanFleetUseCase := scanFleetUC.NewUseCase(
		technicianClient,
		resolver,
		recorder,
		log,
		cfg.Engine.FleetScanConcurrency,
	)

	// Handlers
	workingHours := workingHoursHandler.NewHandler(workingHoursSvc, log)
	timeOff := timeOffHandler.NewHandler(timeOffSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(resolver, log)
	findNextSlot := findNextSlotHandler.NewHandler(findNextSlotUseCase, log)
	scanFleet := scanFleetHandler.NewHandler(scanFleetUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Обход парка только читает данные, поэтому X-User-ID не требуется, хотя метод POST
	r.HandleFunc("/api/v1/companies/{companyId}/availability/scan", scanFleet.Handle).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	// Изменяющие маршруты требуют X-User-ID, чтение открыто
	api.Use(middleware.Auth)

	technician := api.PathPrefix("/companies/{companyId}/technicians/{technicianId}").Subrouter()

	// --- Рабочее время ---
	technician.HandleFunc("/working-hours", workingHours.List).Methods(http.MethodGet)
	technician.HandleFunc("/working-hours", workingHours.Add).Methods(http.MethodPost)
	technician.HandleFunc("/working-hours/{entryId}", workingHours.Update).Methods(http.MethodPut)
	technician.HandleFunc("/working-hours/{entryId}", workingHours.Remove).Methods(http.MethodDelete)

	// --- Отсутствия ---
	technician.HandleFunc("/time-off", timeOff.List).Methods(http.MethodGet)
	technician.HandleFunc("/time-off", timeOff.Add).Methods(http.MethodPost)
	technician.HandleFunc("/time-off/{entryId}", timeOff.Update).Methods(http.MethodPut)
	technician.HandleFunc("/time-off/{entryId}", timeOff.Remove).Methods(http.MethodDelete)

	// --- Доступность ---
	technician.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	technician.HandleFunc("/next-slot", findNextSlot.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
