package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fitforge-app/fitforge/internal/ai"
	"github.com/fitforge-app/fitforge/internal/api"
	"github.com/fitforge-app/fitforge/internal/auth"
	"github.com/fitforge-app/fitforge/internal/config"
	"github.com/fitforge-app/fitforge/internal/database"
	"github.com/fitforge-app/fitforge/internal/events"
	"github.com/fitforge-app/fitforge/internal/gateway"
	"github.com/fitforge-app/fitforge/internal/middleware"
	"github.com/fitforge-app/fitforge/internal/quota"
	iredis "github.com/fitforge-app/fitforge/internal/redis"
	"github.com/fitforge-app/fitforge/internal/server"
	"github.com/fitforge-app/fitforge/internal/usage"
	"github.com/fitforge-app/fitforge/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.MigrationsPath != "" {
		if err := database.RunMigrations(cfg.DB.DSN(), cfg.DB.MigrationsPath); err != nil {
			slog.Error("running migrations", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	redisClient, err := iredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// NATS JetStream
	eventsClient, err := events.NewClient(ctx, cfg.NATS)
	if err != nil {
		slog.Error("connecting to nats", "error", err)
		os.Exit(1)
	}
	defer eventsClient.Close()

	publisher := events.NewPublisher(eventsClient.JetStream())
	consumerMgr := events.NewConsumerManager(eventsClient.JetStream())

	// Auth
	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	authSvc := auth.NewService(jwtManager, redisClient)
	userRepo := users.NewRepository(pool)
	userSvc := users.NewService(userRepo)
	authHandler := auth.NewHandler(authSvc, userSvc)
	userHandler := users.NewHandler(userSvc)

	// Quota
	quotaRepo := quota.NewRepository(pool)
	quotaSvc := quota.NewService(quotaRepo, cfg.Quota.FreeRoutinesPerMonth)

	// AI gateway
	modelClient := ai.NewClient(cfg.AI)
	gatewaySvc := gateway.NewService(gateway.NewRateLimiter(), quotaSvc, modelClient, publisher)
	gatewayHandler := gateway.NewHandler(gatewaySvc)

	// Usage history
	usageRepo := usage.NewRepository(pool)
	usageHandler := usage.NewHandler(quotaSvc, usageRepo)
	usageConsumer := usage.NewConsumer(usageRepo, consumerMgr)
	go func() {
		if err := usageConsumer.Start(ctx); err != nil {
			slog.Error("usage consumer stopped", "error", err)
		}
	}()

	// Auth endpoint rate limiter (per-IP, Redis-backed)
	authLimiter := middleware.NewRateLimiter(redisClient, 20, 60)

	// Router
	router := api.NewRouter(pool, eventsClient, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		AuthRateLimiter:    authLimiter.Middleware,
	}, api.HandlerSet{
		Register: authHandler.Register,
		Login:    authHandler.Login,
		Refresh:  authHandler.Refresh,
		Logout:   authHandler.Logout,

		HandleAI: gatewayHandler.HandleAction,

		GetMe:    userHandler.Me,
		UpdateMe: userHandler.UpdateMe,

		GetQuota:    usageHandler.GetQuota,
		ListHistory: usageHandler.ListHistory,

		AuthMiddleware: auth.Middleware(authSvc),
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
