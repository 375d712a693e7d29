package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairlend/loanapp/internal/application/usecase"
	"github.com/fairlend/loanapp/internal/domain/service"
	"github.com/fairlend/loanapp/internal/infrastructure/config"
	"github.com/fairlend/loanapp/internal/infrastructure/messaging"
	pgRepo "github.com/fairlend/loanapp/internal/infrastructure/persistence/postgres"
	"github.com/fairlend/loanapp/internal/infrastructure/scoring"
	grpcPresentation "github.com/fairlend/loanapp/internal/presentation/grpc"
	"github.com/fairlend/loanapp/internal/presentation/rest"
	"github.com/fairlend/loanapp/pkg/auth"
	pkgkafka "github.com/fairlend/loanapp/pkg/kafka"
	"github.com/fairlend/loanapp/pkg/observability"
	pkgpostgres "github.com/fairlend/loanapp/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})

	logger.Info("starting loanapp",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"live_scoring", cfg.Scoring.UseLiveAPI,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database.
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
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.RunMigrations {
		if err := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://"+cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Infrastructure adapters.
	uow := pgRepo.NewUnitOfWork(pool)
	repos := pgRepo.NewRepositories(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close() //nolint:errcheck
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	scorer := scoring.New(scoring.Config{
		UseLiveAPI: cfg.Scoring.UseLiveAPI,
		BaseURL:    cfg.Scoring.BaseURL,
		APIKey:     cfg.Scoring.APIKey,
		Timeout:    cfg.Scoring.Timeout,
	}, logger)
	policy := service.NewDecisionPolicy()

	// Use cases.
	submitUC := usecase.NewSubmitApplicationUseCase(uow, scorer, policy, publisher, logger)
	updateStatusUC := usecase.NewUpdateStatusUseCase(uow, publisher, logger)
	getApplicationUC := usecase.NewGetApplicationUseCase(repos)
	listApplicationsUC := usecase.NewListApplicationsUseCase(repos)
	summarizeUC := usecase.NewSummarizeApplicationsUseCase(repos)
	getApplicantUC := usecase.NewGetApplicantUseCase(repos)
	listApplicantsUC := usecase.NewListApplicantsUseCase(repos)

	// JWT validation for the gRPC surface.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "loanapp",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewLoanHandler(submitUC, updateStatusUC, getApplicationUC, listApplicationsUC, summarizeUC)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, cfg.TLS.CertFile, cfg.TLS.KeyFile)

	// HTTP server: REST API, health checks, metrics.
	mux := http.NewServeMux()
	rest.NewHandler(
		submitUC, updateStatusUC, getApplicationUC, listApplicationsUC,
		summarizeUC, getApplicantUC, listApplicantsUC, logger,
	).RegisterRoutes(mux)
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loanapp stopped")
}
