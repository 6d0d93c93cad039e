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
	"github.com/rs/cors"

	createBookingHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/create_booking"
	getWeekHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/get_week"
	listRequestsHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/list_cancellation_requests"
	requestCancellationHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/request_cancellation"
	resetWeekHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/reset_week"
	resolveCancellationHandler "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers/resolve_cancellation"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/config"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/cache"
	bookingRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/booking"
	cancellationRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/cancellation"
	userRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/user"
	scheduleService "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
	weekviewService "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview"
	createBookingUC "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/create_booking"
	requestCancellationUC "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/request_cancellation"
	resolveCancellationUC "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/resolve_cancellation"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/dbmetrics"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/logger"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/metrics"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/simpletxmanager"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/txmanager"
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

	log.Info("Starting DHWANI-SLOT-BOOKING...")
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

	// Подключаемся к Redis (кэш недельного вида)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	weekCache := cache.NewWeekViewCache(redisClient, cfg.Redis.CacheTTL())

	// Инициализируем калькулятор расписания
	scheduleSvc, err := scheduleService.New(cfg.Schedule.Timezone, cfg.Schedule.WeekStartsOn)
	if err != nil {
		log.Fatal("Failed to initialize schedule: %v", err)
	}
	log.Info("Schedule initialized (timezone=%s, week_starts_on=%d, weekend_max_slots=%d)",
		cfg.Schedule.Timezone, cfg.Schedule.WeekStartsOn, cfg.Schedule.WeekendMaxSlotsPerBand)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		cancellationRepository *cancellationRepo.Repository
		userRepository         *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cancellationRepository = cancellationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		cancellationRepository = cancellationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	weekviewSvc := weekviewService.NewService(
		bookingRepository,
		cancellationRepository,
		scheduleSvc,
		weekCache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		scheduleSvc,
		txMgr,
		weekCache,
		cfg.Schedule.WeekendMaxSlotsPerBand,
		log,
	)

	requestCancellationUseCase := requestCancellationUC.NewUseCase(
		bookingRepository,
		cancellationRepository,
		scheduleSvc,
		txMgr,
		weekCache,
		log,
	)

	resolveCancellationUseCase := resolveCancellationUC.NewUseCase(
		cancellationRepository,
		bookingRepository,
		scheduleSvc,
		txMgr,
		weekCache,
		log,
	)

	// Инициализируем handlers
	getWeek := getWeekHandler.NewHandler(weekviewSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	requestCancellation := requestCancellationHandler.NewHandler(requestCancellationUseCase, log)
	resolveCancellation := resolveCancellationHandler.NewHandler(resolveCancellationUseCase, log)
	listRequests := listRequestsHandler.NewHandler(weekviewSvc, log)
	resetWeek := resetWeekHandler.NewHandler(weekviewSvc, log)

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

	// Недельный вид: окно дат, каталог слотов, занятость
	api.HandleFunc("/week", getWeek.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.IsAdmin, log)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Запрос на отмену бронирования
	protected.HandleFunc("/cancellation-requests", requestCancellation.Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	// Список всех запросов на отмену
	protected.HandleFunc("/cancellation-requests", listRequests.Handle).Methods(http.MethodGet)

	// Одобрение или отклонение запроса на отмену
	protected.HandleFunc("/cancellation-requests/{requestId}", resolveCancellation.Handle).Methods(http.MethodPatch)

	// Сброс бронирований текущей недели
	protected.HandleFunc("/reset", resetWeek.Handle).Methods(http.MethodPost)

	// CORS для SPA фронтенда
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
