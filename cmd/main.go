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

	cancelReservationHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/check_availability"
	createReservationHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/get_available_slots"
	getCustomerReservationsHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/get_reservation"
	getStatisticsHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/get_statistics"
	getStoreReservationsHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/get_store_reservations"
	transitionReservationHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/transition_reservation"
	updateReservationHandler "github.com/CaravaProject/carava-carwash/internal/api/handlers/update_reservation"
	"github.com/CaravaProject/carava-carwash/internal/api/middleware"
	"github.com/CaravaProject/carava-carwash/internal/config"
	menuRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/menu"
	reservationRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/reservation"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	customerServiceClient "github.com/CaravaProject/carava-carwash/internal/integrations/customerservice"
	ownerService "github.com/CaravaProject/carava-carwash/internal/service/owner"
	reservationsService "github.com/CaravaProject/carava-carwash/internal/service/reservations"
	checkAvailabilityUC "github.com/CaravaProject/carava-carwash/internal/usecase/check_availability"
	createReservationUC "github.com/CaravaProject/carava-carwash/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/CaravaProject/carava-carwash/internal/usecase/get_available_slots"
	getStatisticsUC "github.com/CaravaProject/carava-carwash/internal/usecase/get_statistics"
	updateReservationUC "github.com/CaravaProject/carava-carwash/internal/usecase/update_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
	"github.com/CaravaProject/carava-carwash/pkg/logger"
	"github.com/CaravaProject/carava-carwash/pkg/metrics"
	"github.com/CaravaProject/carava-carwash/pkg/simpletxmanager"
	"github.com/CaravaProject/carava-carwash/pkg/txmanager"
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

	log.Info("Starting Carava-CarwashService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционного клиента
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CustomerService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		storeRepository       *storeRepo.Repository
		menuRepository        *menuRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		storeRepository = storeRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		storeRepository = storeRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		storeRepository,
		log,
	)
	ownerSvc := ownerService.NewService(
		reservationRepository,
		storeRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		storeRepository,
		menuRepository,
		customerClient,
		txMgr,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		storeRepository,
		menuRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		storeRepository,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		storeRepository,
		log,
	)

	getStatisticsUseCase := getStatisticsUC.NewUseCase(
		reservationRepository,
		storeRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getStoreReservations := getStoreReservationsHandler.NewHandler(ownerSvc, log)
	transitionReservation := transitionReservationHandler.NewHandler(ownerSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(getStatisticsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты точки на дату
	api.HandleFunc("/stores/{storeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности конкретного слота
	api.HandleFunc("/stores/{storeId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони клиента ---
	// Создание брони
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Изменение брони (замена новой бронью)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони клиентом
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Активные брони клиента
	protected.HandleFunc("/customers/{customerId}/reservations",
		getCustomerReservations.HandleActive).Methods(http.MethodGet)

	// История броней клиента
	protected.HandleFunc("/customers/{customerId}/reservations/history",
		getCustomerReservations.HandleHistory).Methods(http.MethodGet)

	// --- Управление точкой (для владельцев) ---
	// Список броней точки с фильтрацией
	protected.HandleFunc("/stores/{storeId}/reservations",
		getStoreReservations.Handle).Methods(http.MethodGet)

	// Действие владельца над бронью (confirm / reject / start / complete / no_show / cancel)
	protected.HandleFunc("/stores/{storeId}/reservations/{reservationId}/{action}",
		transitionReservation.Handle).Methods(http.MethodPatch)

	// Статистика точки за период
	protected.HandleFunc("/stores/{storeId}/statistics",
		getStatistics.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
