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

	adminHandler "github.com/m04kA/SMC-LeasingGateway/internal/api/handlers/admin"
	authHandler "github.com/m04kA/SMC-LeasingGateway/internal/api/handlers/auth"
	catalogHandler "github.com/m04kA/SMC-LeasingGateway/internal/api/handlers/catalog"
	checkoutHandler "github.com/m04kA/SMC-LeasingGateway/internal/api/handlers/checkout"
	profileHandler "github.com/m04kA/SMC-LeasingGateway/internal/api/handlers/profile"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/config"
	"github.com/m04kA/SMC-LeasingGateway/internal/excel"
	checkoutRepo "github.com/m04kA/SMC-LeasingGateway/internal/infra/storage/checkout"
	sessionRepo "github.com/m04kA/SMC-LeasingGateway/internal/infra/storage/session"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/internal/pdf"
	adminService "github.com/m04kA/SMC-LeasingGateway/internal/service/admin"
	catalogService "github.com/m04kA/SMC-LeasingGateway/internal/service/catalog"
	checkoutsService "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts"
	profileService "github.com/m04kA/SMC-LeasingGateway/internal/service/profile"
	sessionService "github.com/m04kA/SMC-LeasingGateway/internal/service/session"
	checkoutUC "github.com/m04kA/SMC-LeasingGateway/internal/usecase/checkout"
	"github.com/m04kA/SMC-LeasingGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-LeasingGateway/pkg/logger"
	"github.com/m04kA/SMC-LeasingGateway/pkg/metrics"
	"github.com/m04kA/SMC-LeasingGateway/pkg/validation"
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

	log.Info("Starting SMC-LeasingGateway...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository  *sessionRepo.Repository
		checkoutRepository *checkoutRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		checkoutRepository = checkoutRepo.NewRepository(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		checkoutRepository = checkoutRepo.NewRepository(db)
	}

	// Инициализируем клиент бэкенда лизинга
	leasingClient := leasingapi.NewClient(
		cfg.LeasingAPI.Host,
		cfg.LeasingAPI.TimeoutDuration(),
		log,
	)
	if cfg.Metrics.Enabled {
		leasingClient = leasingClient.WithObserver(metricsCollector)
	}
	log.Info("Leasing API client initialized (host=%s timeout=%ds)", cfg.LeasingAPI.Host, cfg.LeasingAPI.Timeout)

	// Генераторы документов
	receiptGenerator, err := pdf.NewGenerator(cfg.Checkout.ReceiptFont)
	if err != nil {
		log.Fatal("Failed to initialize receipt generator: %v", err)
	}
	exporter := excel.NewGenerator()

	validator := validation.New()

	// Инициализируем сервисы
	sessionSvc := sessionService.NewService(sessionRepository, leasingClient, validator, log)
	catalogSvc := catalogService.NewService(leasingClient, validator, log)
	profileSvc := profileService.NewService(leasingClient, validator, log)
	adminSvc := adminService.NewService(leasingClient, exporter, cfg.Admin.PageSize, log)
	checkoutsSvc := checkoutsService.NewService(checkoutRepository, receiptGenerator, log)

	// Инициализируем use cases
	var checkoutMetrics checkoutUC.Metrics
	if cfg.Metrics.Enabled {
		checkoutMetrics = metricsCollector
	}
	checkoutUseCase := checkoutUC.NewUseCase(
		leasingClient,
		checkoutRepository,
		validator,
		checkoutMetrics,
		cfg.Checkout.RedirectAfterDuration(),
		log,
	)

	// Инициализируем handlers
	auth := authHandler.NewHandler(sessionSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, checkoutsSvc, log)
	profile := profileHandler.NewHandler(profileSvc, log)
	admin := adminHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без сессии)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)

	// Отзывы доступны без входа
	api.HandleFunc("/cars/{carId}/reviews", catalog.GetReviews).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Session-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Session(sessionSvc, log))

	// --- Сессия ---
	protected.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/me", auth.Me).Methods(http.MethodGet)

	// --- Каталог ---
	protected.HandleFunc("/cars", catalog.Search).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{carId}", catalog.GetCar).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{carId}/lease-quote", catalog.LeaseQuote).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{carId}/reviews", catalog.CreateReview).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{carId}/reserve", catalog.Reserve).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", catalog.MyReservations).Methods(http.MethodGet)

	// --- Избранное ---
	protected.HandleFunc("/favorites", catalog.ListFavorites).Methods(http.MethodGet)
	protected.HandleFunc("/favorites/{carId}", catalog.AddFavorite).Methods(http.MethodPost)
	protected.HandleFunc("/favorites/{carId}", catalog.RemoveFavorite).Methods(http.MethodDelete)
	protected.HandleFunc("/favorites/{carId}/toggle", catalog.ToggleFavorite).Methods(http.MethodPost)

	// --- Оформление лизинга ---
	protected.HandleFunc("/checkouts", checkout.Create).Methods(http.MethodPost)
	protected.HandleFunc("/checkouts", checkout.List).Methods(http.MethodGet)
	protected.HandleFunc("/checkouts/{checkoutId}", checkout.Get).Methods(http.MethodGet)
	protected.HandleFunc("/checkouts/{checkoutId}/receipt", checkout.Receipt).Methods(http.MethodGet)

	// --- Профиль ---
	protected.HandleFunc("/profile", profile.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profile.Update).Methods(http.MethodPut)
	protected.HandleFunc("/profile/analytics", profile.Analytics).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (сессия с ролью Admin)
	// ============================================================

	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireAdmin)

	// pickers регистрируется раньше /{resource}
	adminRoutes.HandleFunc("/pickers", admin.Pickers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/{resource}", admin.List).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/{resource}", admin.Create).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/{resource}/schema", admin.Schema).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/{resource}/export", admin.Export).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/{resource}/{id}", admin.Update).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/{resource}/{id}", admin.Delete).Methods(http.MethodDelete)

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
