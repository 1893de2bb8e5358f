package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/apps"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/apps/trainingdata"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/database"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/logging"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/revalidate"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/routes"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if len(cfg.GoogleAudiences()) == 0 {
		slog.Warn("GOOGLE_CLIENT_IDS is empty; Google sign-in will reject every token")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateCore(); err != nil {
		slog.Error("core migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.AppEnv),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Revalidation: Redis pub/sub when configured, otherwise a no-op.
	var (
		revalidator revalidate.Revalidator = revalidate.NoOp{}
		redisClient *redis.Client
		redisPing   handlers.Pinger
	)
	if cfg.RedisURL != "" {
		client, err := revalidate.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		redisClient = client
		revalidator = revalidate.NewRedisRevalidator(client, cfg.RevalidateChannel)
		redisPing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		slog.Warn("REDIS_URL not set; revalidation events are dropped")
	}

	// Services
	m := metrics.New()
	guard := services.NewGuard(revalidator, m)
	authService := services.NewAuthService(database.DB, cfg, services.NewGoogleJWKSClient(cfg.GoogleAudiences()), guard)
	bookingService := services.NewBookingService(database.DB, guard, m)
	categoryService := services.NewCategoryService(database.DB, guard, m)
	locationService := services.NewLocationService(database.DB, guard, m)
	userService := services.NewUserService(database.DB, guard, m)

	plugins := []apps.Plugin{
		trainingdata.New(),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Health:     handlers.NewHealthHandler(database.Ping, redisPing),
		Bookings:   handlers.NewBookingHandler(bookingService),
		Categories: handlers.NewCategoryHandler(categoryService),
		Locations:  handlers.NewLocationHandler(locationService),
		Users:      handlers.NewUserHandler(userService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(m.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, m, h, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.ErrorContext(c.UserContext(), "unhandled server error",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.MutationResponse{Error: message})
}
