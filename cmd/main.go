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

	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	decideBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/decide_booking"
	getBookerBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booker_bookings"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getCompletedBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_completed_booking"
	getItemBookingsSummaryHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_item_bookings_summary"
	getOwnerBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_owner_bookings"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/memory"
	itemServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/itemservice"
	userServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	decideBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/decide_booking"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// bookingStore общий набор методов PostgreSQL и in-memory хранилищ
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type lifecycleRecorder interface {
	BookingCreated()
	BookingDecided(status string)
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
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
	var metricsCollector *metrics.Metrics
	var recorder lifecycleRecorder = metrics.Nop{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		store bookingStore
		txMgr txManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = memory.NewBookingRepository()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory booking store, data will be lost on restart")

	default:
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

		// Без метрик обёртка работает как прозрачный прокси
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	itemClient := itemServiceClient.NewClient(
		cfg.ItemService.URL,
		time.Duration(cfg.ItemService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ItemService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ItemService.URL, cfg.ItemService.Timeout)

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(store, userClient, itemClient, log)

	createBookingUseCase := createBookingUC.NewUseCase(store, userClient, itemClient, txMgr, recorder, log)
	decideBookingUseCase := decideBookingUC.NewUseCase(store, userClient, itemClient, txMgr, recorder, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	decideBooking := decideBookingHandler.NewHandler(decideBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookerBookings := getBookerBookingsHandler.NewHandler(bookingSvc, cfg.Pagination.DefaultSize, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, cfg.Pagination.DefaultSize, log)
	getItemBookingsSummary := getItemBookingsSummaryHandler.NewHandler(bookingSvc, log)
	getCompletedBooking := getCompletedBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// INTERNAL ROUTES (для соседних сервисов, без аутентификации)
	// ============================================================

	r.HandleFunc("/internal/items/{itemId:[0-9]+}/bookers/{userId:[0-9]+}/completed",
		getCompletedBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Sharer-User-Id header)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log))
		log.Info("Rate limit enabled: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getBookerBookings.Handle).Methods(http.MethodGet)

	// /bookings/owner регистрируется раньше /bookings/{bookingId}
	api.HandleFunc("/bookings/owner", getOwnerBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", decideBooking.Handle).Methods(http.MethodPatch)

	// --- Карточка вещи ---
	api.HandleFunc("/items/{itemId:[0-9]+}/bookings/summary", getItemBookingsSummary.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
