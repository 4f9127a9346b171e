package main

import (
	"context"
	"database/sql"
	"errors"
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

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createGoalHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_goal"
	createRewardHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_reward"
	deleteRewardHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_reward"
	exchangeRewardHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/exchange_reward"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getDayAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_day_appointments"
	getGoalProgressHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_goal_progress"
	getGoalStatisticsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_goal_statistics"
	getLoyaltyAnalyticsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_loyalty_analytics"
	getPointsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_points"
	getRewardAnalyticsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_reward_analytics"
	getRewardHistoryHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_reward_history"
	getSalesReportHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_sales_report"
	getServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_service"
	getStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user_appointments"
	listGoalsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_goals"
	listRewardsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_rewards"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_staff"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateGoalProgressHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_goal_progress"
	updateRewardHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_reward"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	goalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/goal"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	rewardRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reward"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notification"
	analyticsService "github.com/m04kA/SMC-SalonService/internal/service/analytics"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	goalsService "github.com/m04kA/SMC-SalonService/internal/service/goals"
	rewardsService "github.com/m04kA/SMC-SalonService/internal/service/rewards"
	salesService "github.com/m04kA/SMC-SalonService/internal/service/sales"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: hours=%d-%d, interval=%s, timezone=%s",
		policy.OpenHour, policy.CloseHour, policy.SlotInterval, policy.Location)

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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках обёртка просто проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	goalRepository := goalRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	rewardRepository := rewardRepo.NewRepository(wrappedDB)

	// Интеграции
	notifier := notification.NewClient(
		cfg.Notification.URL,
		cfg.Notification.APIKey,
		time.Duration(cfg.Notification.Timeout)*time.Second,
		log,
	)
	if !cfg.Notification.Enabled() {
		log.Warn("Notification client disabled (no url configured)")
	}

	publisher := events.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, cfg.Kafka.PublishTimeout(), log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, rate limiter will fail open: %v", err)
		}
		pingCancel()
		defer redisClient.Close()
		log.Info("Redis connected (addr=%s)", cfg.Redis.Addr)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		profileRepository,
		publisher,
		txMgr,
		policy,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	rewardSvc := rewardsService.NewService(
		rewardRepository,
		profileRepository,
		txMgr,
		metricsCollector,
		policy.Location,
		log,
	)
	goalSvc := goalsService.NewService(goalRepository, txMgr, metricsCollector, log)
	analyticsSvc := analyticsService.NewService(
		goalRepository,
		rewardRepository,
		profileRepository,
		txMgr,
		policy.Location,
		log,
	)
	salesSvc := salesService.NewService(
		appointmentRepository,
		profileRepository,
		policy,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		profileRepository,
		notifier,
		publisher,
		txMgr,
		policy,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		policy,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, policy.Location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(catalogSvc, log)
	getStaff := getStaffHandler.NewHandler(catalogSvc, log)

	listRewards := listRewardsHandler.NewHandler(rewardSvc, log)
	getPoints := getPointsHandler.NewHandler(rewardSvc, log)
	getRewardHistory := getRewardHistoryHandler.NewHandler(rewardSvc, log)
	exchangeReward := exchangeRewardHandler.NewHandler(rewardSvc, log)
	createReward := createRewardHandler.NewHandler(rewardSvc, log)
	updateReward := updateRewardHandler.NewHandler(rewardSvc, log)
	deleteReward := deleteRewardHandler.NewHandler(rewardSvc, log)
	getRewardAnalytics := getRewardAnalyticsHandler.NewHandler(rewardSvc, log)

	createGoal := createGoalHandler.NewHandler(goalSvc, log)
	listGoals := listGoalsHandler.NewHandler(goalSvc, log)
	getGoalStatistics := getGoalStatisticsHandler.NewHandler(goalSvc, log)
	updateGoalProgress := updateGoalProgressHandler.NewHandler(goalSvc, log)
	getGoalProgress := getGoalProgressHandler.NewHandler(goalSvc, log)
	getLoyaltyAnalytics := getLoyaltyAnalyticsHandler.NewHandler(analyticsSvc, log)

	getSalesReport := getSalesReportHandler.NewHandler(salesSvc, log)

	// Лимитер для операций записи (создание записи, обмен баллов)
	writeLimit, err := newWriteLimiter(cfg, redisClient, log)
	if err != nil {
		log.Fatal("Invalid rate limit config: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}", getStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rewards", listRewards.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.Handle("/appointments", writeLimit(http.HandlerFunc(createAppointment.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/me/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Баллы и награды ---
	protected.HandleFunc("/me/points", getPoints.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/rewards/history", getRewardHistory.Handle).Methods(http.MethodGet)
	protected.Handle("/rewards/{rewardId}/exchange", writeLimit(http.HandlerFunc(exchangeReward.Handle))).Methods(http.MethodPost)

	// --- Цели ---
	protected.HandleFunc("/me/goals", createGoal.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me/goals", listGoals.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/goals/statistics", getGoalStatistics.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/goals/{goalId}/progress", updateGoalProgress.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me/goals/{goalId}/progress", getGoalProgress.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (роль проверяется в сервисах)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/appointments", getDayAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/rewards", createReward.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/rewards/analytics", getRewardAnalytics.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rewards/{rewardId}", updateReward.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/rewards/{rewardId}", deleteReward.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/sales", getSalesReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/{report}", getLoyaltyAnalytics.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed: %v", err)
			stop()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

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

// newWriteLimiter выбирает лимитер для операций записи
// С redis счётчик общий для всех инстансов, иначе лимит считается в памяти процесса
func newWriteLimiter(cfg *config.Config, rdb *redis.Client, log *logger.Logger) (mux.MiddlewareFunc, error) {
	if !cfg.RateLimit.Enabled {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	ips, err := middleware.NewClientIPResolver(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		log.Info("Rate limiting via redis: limit=%d per %s", cfg.RateLimit.WindowLimit, window)
		return middleware.NewWindowRateLimiter(
			middleware.NewRedisCounter(rdb),
			cfg.RateLimit.WindowLimit,
			window,
			cfg.Metrics.ServiceName,
			true,
			ips,
			log,
		).Middleware(), nil
	}

	log.Info("Rate limiting in memory: rps=%.1f, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, ips, log).Middleware(), nil
}
