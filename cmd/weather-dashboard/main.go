package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/maxfalkovich/web-lab4-weather/internal/api/http"
	"github.com/maxfalkovich/web-lab4-weather/internal/config"
	"github.com/maxfalkovich/web-lab4-weather/internal/dashboard"
	"github.com/maxfalkovich/web-lab4-weather/internal/geo"
	"github.com/maxfalkovich/web-lab4-weather/internal/scheduler"
	"github.com/maxfalkovich/web-lab4-weather/internal/store"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider and geolocation calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Persistent location list.
	stateStore, err := store.NewSQLiteStore(cfg.StateDBPath)
	if err != nil {
		log.Fatalf("failed to open state store: %v", err)
	}
	defer stateStore.Close()

	state := dashboard.NewState()
	fetcher := providers.NewOpenMeteoProvider(httpClient, cfg.ForecastDays)
	locator := geo.NewIPLocator(httpClient)

	ctrl := dashboard.NewController(state, stateStore, fetcher, locator, cfg.GeoTimeout)

	// Restore persisted locations; fetch immediately if any exist, otherwise
	// try geolocation for the primary.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctrl.Bootstrap(bootCtx)
	bootCancel()

	// Optional background refresh.
	sched := scheduler.New(ctrl, cfg.AutoRefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, ctrl)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
