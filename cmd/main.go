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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RentalService/internal/api"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/availability"
	cancelBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getResourceBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_resource_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/health"
	insuranceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/insurance"
	rentersHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/renters"
	rescheduleBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/reschedule_booking"
	resourcesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/resources"
	updateBookingStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/events"
	"github.com/m04kA/SMC-RentalService/internal/infra/broker/kafka"
	availabilityRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	insuranceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/insurance"
	renterRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/renter"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalService/internal/jobs"
	"github.com/m04kA/SMC-RentalService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/eligibility"
	insuranceService "github.com/m04kA/SMC-RentalService/internal/service/insurance"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
	rentersService "github.com/m04kA/SMC-RentalService/internal/service/renters"
	resourcesService "github.com/m04kA/SMC-RentalService/internal/service/resources"
	addAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/add_availability"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// eventPublisher общий интерфейс kafka и no-op публикации
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// *metrics.Metrics nil-safe, при выключенных метриках методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Booking.TxMaxRetries),
		txmanager.WithBackoff(time.Duration(cfg.Booking.TxRetryBackoffMs)*time.Millisecond),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Публикация событий в Kafka (если включена)
	var publisher eventPublisher = events.NopPublisher{}
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, nil)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		publisher = events.NewBrokerPublisher(producer, cfg.Kafka.Topic)
		log.Info("Kafka publishing enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем репозитории
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	renterRepository := renterRepo.NewRepository(wrappedDB)
	insuranceRepository := insuranceRepo.NewRepository(wrappedDB)

	// Журнал доступности и проверка прав
	availabilityLedger := ledger.New(availabilityRepository, log)
	gate := eligibility.NewGate(renterRepository)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		resourceRepository,
		availabilityLedger,
		gate,
		txMgr,
		publisher,
		log,
	)
	resourceSvc := resourcesService.NewService(resourceRepository, gate, availabilityLedger, log)
	renterSvc := rentersService.NewService(renterRepository, txMgr, log)
	insuranceSvc := insuranceService.NewService(insuranceRepository, bookingRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		resourceRepository,
		bookingRepository,
		availabilityLedger,
		gate,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	addAvailabilityUseCase := addAvailabilityUC.NewUseCase(
		resourceRepository,
		availabilityLedger,
		gate,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		availabilityLedger,
		txMgr,
		publisher,
		log,
	)

	// Фоновые задачи
	var sched *scheduler.Scheduler
	if cfg.Jobs.Enabled {
		runner := jobs.NewRunner(availabilityRepository, log)
		sched, err = scheduler.New(runner, scheduler.Config{
			PruneExpiredAvailability: cfg.Jobs.PruneExpiredAvailability,
		}, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		sched.Start()
	}

	// Настраиваем роутер
	routerOpts := api.Options{Logger: log}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r := api.NewRouter(api.Handlers{
		Health:              health.NewHandler(db),
		Renters:             rentersHandler.NewHandler(renterSvc, log),
		Resources:           resourcesHandler.NewHandler(resourceSvc, log),
		Availability:        availability.NewHandler(addAvailabilityUseCase, resourceSvc, log),
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		GetUserBookings:     getUserBookingsHandler.NewHandler(bookingSvc, log),
		RescheduleBooking:   rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log),
		UpdateBookingStatus: updateBookingStatusHandler.NewHandler(bookingSvc, log),
		CancelBooking:       cancelBookingHandler.NewHandler(bookingSvc, log),
		GetResourceBookings: getResourceBookingsHandler.NewHandler(bookingSvc, log),
		Insurance:           insuranceHandler.NewHandler(insuranceSvc, log),
	}, routerOpts)

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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sched != nil {
		sched.Stop()
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
