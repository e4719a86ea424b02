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

	"github.com/agentsalud/availability-service/internal/api/handlers"
	getAvailabilityHandler "github.com/agentsalud/availability-service/internal/api/handlers/get_availability"
	getServicesWithoutProvidersHandler "github.com/agentsalud/availability-service/internal/api/handlers/get_services_without_providers"
	"github.com/agentsalud/availability-service/internal/api/middleware"
	"github.com/agentsalud/availability-service/internal/availability"
	"github.com/agentsalud/availability-service/internal/config"
	"github.com/agentsalud/availability-service/internal/infra/cache"
	associationRepo "github.com/agentsalud/availability-service/internal/infra/storage/association"
	bookingRepo "github.com/agentsalud/availability-service/internal/infra/storage/booking"
	scheduleRepo "github.com/agentsalud/availability-service/internal/infra/storage/schedule"
	"github.com/agentsalud/availability-service/internal/jobs"
	auditAssociationsUC "github.com/agentsalud/availability-service/internal/usecase/audit_associations"
	getAvailabilityUC "github.com/agentsalud/availability-service/internal/usecase/get_availability"
	"github.com/agentsalud/availability-service/pkg/dbmetrics"
	"github.com/agentsalud/availability-service/pkg/logger"
	"github.com/agentsalud/availability-service/pkg/metrics"
)

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

	log.Info("Starting availability-service...")
	log.Info("Configuration loaded from config.toml (timezone=%s, min_lead_time=%dm)",
		cfg.Booking.Timezone, cfg.Booking.MinLeadTimeMinutes)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		cacheMetrics     scheduleRepo.CacheMetrics
		computeMetrics   getAvailabilityUC.Metrics
		auditMetrics     auditAssociationsUC.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		cacheMetrics = metricsCollector
		computeMetrics = metricsCollector
		auditMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	associationRepository := associationRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	var scheduleRepository getAvailabilityUC.ScheduleRepository = scheduleRepo.NewRepository(executor)

	// Кэш недельных расписаний (опционально)
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cache.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 2 * time.Second,
		})
		defer redisCache.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn("Redis unavailable at %s, weekly hours will be read from database on cache errors: %v",
				cfg.Redis.Addr(), err)
		} else {
			log.Info("Successfully connected to Redis (addr=%s, ttl=%ds)", cfg.Redis.Addr(), cfg.Redis.TTLSeconds)
		}
		cancelPing()

		scheduleRepository = scheduleRepo.NewCachedRepository(
			scheduleRepo.NewRepository(executor),
			redisCache,
			cfg.Redis.TTL(),
			cacheMetrics,
			log,
		)
	}

	// Ядро расчета доступности
	clock, err := availability.NewSystemClock(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to initialize clock: %v", err)
	}
	assembler := availability.NewAssembler(clock, availability.NewPolicy(cfg.Booking.MinLeadTimeMinutes))

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		associationRepository,
		scheduleRepository,
		bookingRepository,
		assembler,
		computeMetrics,
		log,
		cfg.Booking.Concurrency,
	)

	auditAssociationsUseCase := auditAssociationsUC.NewUseCase(
		associationRepository,
		auditMetrics,
		log,
	)

	// Периодический аудит связей услуга-врач
	scheduler := jobs.NewScheduler(log)
	if cfg.Audit.Enabled {
		orgIDs, err := cfg.Audit.Organizations()
		if err != nil {
			log.Fatal("Invalid audit configuration: %v", err)
		}
		if err := scheduler.AddAudit(cfg.Audit.Schedule, orgIDs, auditAssociationsUseCase); err != nil {
			log.Fatal("Failed to schedule audit: %v", err)
		}
		scheduler.Start()
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getServicesWithoutProviders := getServicesWithoutProvidersHandler.NewHandler(auditAssociationsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступные слоты по услуге с учетом роли
	api.HandleFunc("/organizations/{organizationId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Активные услуги без врачей
	api.HandleFunc("/organizations/{organizationId}/services/without-providers",
		getServicesWithoutProviders.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if cfg.Audit.Enabled {
		scheduler.Stop(shutdownCtx)
		log.Info("Scheduler stopped")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
