package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msmebridge/marketplace/internal/application/usecase"
	"github.com/msmebridge/marketplace/internal/domain/service"
	"github.com/msmebridge/marketplace/internal/infrastructure/config"
	"github.com/msmebridge/marketplace/internal/infrastructure/messaging"
	pgRepo "github.com/msmebridge/marketplace/internal/infrastructure/persistence/postgres"
	"github.com/msmebridge/marketplace/internal/presentation/rest"
	"github.com/msmebridge/marketplace/pkg/auth"
	pkgkafka "github.com/msmebridge/marketplace/pkg/kafka"
	"github.com/msmebridge/marketplace/pkg/observability"
	pkgpostgres "github.com/msmebridge/marketplace/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting marketplace",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.MetricsPort,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	metrics, err := observability.NewMarketplaceMetrics(meterProvider, cfg.ServiceName)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Kafka producer and event publisher.
	producer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer func() { _ = producer.Close() }() //nolint:errcheck
	publisher := messaging.NewKafkaEventPublisher(producer, logger)

	// Repositories.
	appRepo := pgRepo.NewApplicationRepo(pool)
	policyRepo := pgRepo.NewPolicyRepo(pool)
	snapshotRepo := pgRepo.NewSnapshotRepo(pool)
	directory := pgRepo.NewMSMEDirectory(pool)
	idSource := pgRepo.NewApplicationIDSequence(pool)

	// Domain services.
	evaluator := service.NewPolicyFitEvaluator(cfg.AmountUnitScale)
	aggregator := service.NewLenderStatsAggregator()

	// Use cases.
	submitUC := usecase.NewSubmitApplicationUseCase(
		appRepo, policyRepo, snapshotRepo, directory, idSource, publisher, evaluator, logger,
	)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)
	listAppsUC := usecase.NewListApplicationsUseCase(appRepo, directory, logger)
	updateStatusUC := usecase.NewUpdateApplicationStatusUseCase(appRepo, publisher)
	statsUC := usecase.NewGetLenderStatsUseCase(appRepo, aggregator)
	msmeDetailsUC := usecase.NewGetMSMEDetailsUseCase(appRepo, directory, snapshotRepo, logger)
	createPolicyUC := usecase.NewCreatePolicyUseCase(policyRepo, publisher)
	getPolicyUC := usecase.NewGetPolicyUseCase(policyRepo)
	listPoliciesUC := usecase.NewListPoliciesUseCase(policyRepo)
	updatePolicyUC := usecase.NewUpdatePolicyUseCase(policyRepo)
	deactivatePolicyUC := usecase.NewDeactivatePolicyUseCase(policyRepo, publisher)
	previewUC := usecase.NewPreviewPolicyFitUseCase(policyRepo, snapshotRepo, directory, evaluator, logger)

	// Token validation against the identity service's signing secret.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: cfg.JWTSecret})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// HTTP handlers.
	appHandler := rest.NewApplicationHandler(
		submitUC, getAppUC, listAppsUC, updateStatusUC, statsUC, msmeDetailsUC, logger,
	)
	policyHandler := rest.NewPolicyHandler(
		createPolicyUC, getPolicyUC, listPoliciesUC, updatePolicyUC, deactivatePolicyUC, previewUC, logger,
	)
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
	}, logger)

	server := rest.NewServer(rest.ServerConfig{
		Port:       cfg.HTTPPort,
		JWTService: jwtService,
		Metrics:    metrics,
	}, appHandler, policyHandler, healthHandler, logger)

	// Metrics endpoint on its own port.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("metrics server listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown error", "error", err)
	}
	logger.Info("marketplace stopped")
}
