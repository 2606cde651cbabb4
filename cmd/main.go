package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-intake-ledger/internal/config"
	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/handler"
	"github.com/KasumiMercury/primind-intake-ledger/internal/health"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/gormstore"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/memory"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/runrecorder"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/system"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/writerlock"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/logging"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/metrics"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/middleware"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/anchor"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/dose"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/ledger"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/lowstock"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/medication"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/purchase"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/recurrence"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/reminder"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/settings"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("intake-ledger")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	ledgerMetrics, err := metrics.NewLedgerMetrics()
	if err != nil {
		slog.Error("failed to initialize ledger metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize ledger result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close ledger result recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect redis",
				slog.String("event", "redis.connect.fail"),
				slog.String("error", err.Error()),
			)
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr))
	} else {
		slog.Warn("REDIS_ADDR not set, reminder log kept in memory and writer lock disabled")
	}

	store, database, closeStore, err := initStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize storage",
			slog.String("driver", string(cfg.Storage.Driver)),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer closeStore()

	if redisClient != nil && !cfg.WriterLock.Disabled {
		store = writerlock.NewGuard(store, writerlock.NewLocker(redisClient, writerlock.Options{
			TTL: cfg.WriterLock.TTL,
		}))
		slog.Info("writer lock enabled", slog.Duration("ttl", cfg.WriterLock.TTL))
	}

	var reminderLog domain.ReminderLog = memory.NewReminderLog()
	if redisClient != nil {
		reminderLog = repository.NewReminderLog(redisClient, cfg.Schedule.ReminderLookbackDuration())
	}

	clock, err := system.NewClock(cfg.Timezone)
	if err != nil {
		slog.Error("failed to load timezone", slog.String("timezone", cfg.Timezone), slog.String("error", err.Error()))
		return 1
	}
	ids := system.NewUUIDGenerator()
	notifier := taskqueue.NewNotifier(taskQueue)

	resolver := anchor.NewResolver()
	calculator := dose.NewCalculator()

	scheduleService := schedule.NewService(
		store,
		clock,
		ids,
		calculator,
		recurrence.NewExpander(resolver),
		resultRecorder,
		ledgerMetrics,
		cfg.Schedule.Horizon(),
	)
	ledgerService := ledger.NewService(store, clock, ledgerMetrics)
	medicationService := medication.NewService(store, clock, ids, resolver, scheduleService)
	purchaseService := purchase.NewService(store, clock, ids, scheduleService)
	settingsService := settings.NewService(store, clock, scheduleService)
	reminderService := reminder.NewService(
		store,
		clock,
		ledgerService,
		notifier,
		reminderLog,
		ledgerMetrics,
		cfg.Schedule.ReminderLookbackDuration(),
	)
	lowStockService := lowstock.NewService(
		store,
		clock,
		ids,
		lowstock.NewEstimator(clock, lowstock.Windows{
			PrimaryDays:  cfg.Schedule.PrimaryWindowDays,
			FallbackDays: cfg.Schedule.FallbackWindowDays,
		}),
		notifier,
		resultRecorder,
		ledgerMetrics,
	)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     moduleName,
		TracerName: "github.com/KasumiMercury/primind-intake-ledger/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return c.Request.Method + " " + route
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, database, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.Register(r.Group("/api/v1"), handler.Handlers{
		Medication: handler.NewMedicationHandler(medicationService, purchaseService),
		Intake:     handler.NewIntakeHandler(ledgerService),
		Settings:   handler.NewSettingsHandler(settingsService, calculator),
		Job:        handler.NewJobHandler(scheduleService, reminderService, lowStockService),
	})

	generateOnStartup(ctx, scheduleService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("storage", string(cfg.Storage.Driver)),
			slog.String("timezone", cfg.Timezone),
			slog.Int("horizon_days", cfg.Schedule.HorizonDays),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := resultRecorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush ledger results", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis metrics: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

type scheduleGenerator interface {
	Generate(ctx context.Context) (*schedule.Result, error)
}

// generateOnStartup fills the schedule horizon before the server accepts
// requests. A failure is only logged; the generate job retries it.
func generateOnStartup(ctx context.Context, gen scheduleGenerator) bool {
	result, err := gen.Generate(ctx)
	if err != nil {
		slog.WarnContext(ctx, "startup schedule generation failed",
			slog.String("error", err.Error()),
		)
		return false
	}

	slog.InfoContext(ctx, "startup schedule generation completed",
		slog.Int("medications", result.Medications),
		slog.Int("generated", result.Generated),
	)
	return true
}

// initStore opens the configured ledger store. The returned Pinger is nil for
// the in-memory driver.
func initStore(ctx context.Context, cfg *config.StorageConfig) (domain.Store, health.Pinger, func(), error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		store, err := gormstore.Open(ctx, gormstore.Config{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, nil, err
		}

		slog.Info("postgres store ready")
		closeStore := func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close postgres store", slog.String("error", err.Error()))
			}
		}
		return store, store, closeStore, nil

	default:
		slog.Warn("using in-memory store, ledger state is lost on restart")
		return memory.NewStore(), nil, func() {}, nil
	}
}
