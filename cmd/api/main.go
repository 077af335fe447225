package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/perfval/perfval-backend/api/routes"
	"github.com/perfval/perfval-backend/internal/auth"
	"github.com/perfval/perfval-backend/internal/competencies"
	"github.com/perfval/perfval-backend/internal/employees"
	"github.com/perfval/perfval-backend/internal/goals"
	"github.com/perfval/perfval-backend/internal/performance"
	"github.com/perfval/perfval-backend/internal/users"
	"github.com/perfval/perfval-backend/pkg/auth/session"
	"github.com/perfval/perfval-backend/pkg/config"
	"github.com/perfval/perfval-backend/pkg/db"
	"github.com/perfval/perfval-backend/pkg/logger"
	"github.com/perfval/perfval-backend/pkg/metrics"
	"github.com/perfval/perfval-backend/pkg/migrate"
	"github.com/perfval/perfval-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	employeeRepo := employees.NewRepository(dbClient.DB())
	goalRepo := goals.NewRepository(dbClient.DB())
	performanceRepo := performance.NewRepository(dbClient.DB())
	competencyRepo := competencies.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	employeeService, err := employees.NewService(employeeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create employee service", err)
		os.Exit(1)
	}

	goalService, err := goals.NewService(goals.ServiceParams{
		Repo:      goalRepo,
		Employees: employeeRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create goal service", err)
		os.Exit(1)
	}

	performanceService, err := performance.NewService(performance.ServiceParams{
		Repo:      performanceRepo,
		Employees: employeeRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create performance service", err)
		os.Exit(1)
	}

	competencyService, err := competencies.NewService(competencies.ServiceParams{
		Repo:      competencyRepo,
		Employees: employeeRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create competency service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		Sessions:     sessionManager,
		Registry:     registry,
		HTTP:         httpMetrics,
		Auth:         authService,
		Employees:    employeeService,
		Goals:        goalService,
		Performance:  performanceService,
		Competencies: competencyService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
