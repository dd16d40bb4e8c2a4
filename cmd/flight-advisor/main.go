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

	"github.com/routewise/flight-advisor/internal/airports"
	httpapi "github.com/routewise/flight-advisor/internal/api/http"
	"github.com/routewise/flight-advisor/internal/config"
	"github.com/routewise/flight-advisor/internal/feeds"
	"github.com/routewise/flight-advisor/internal/planning"
	"github.com/routewise/flight-advisor/internal/scheduler"
	"github.com/routewise/flight-advisor/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound feed calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured price retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Decision policies; tankering step and floor come from config.
	tankeringPolicy := planning.DefaultTankeringPolicy()
	tankeringPolicy.StepGallons = cfg.TankeringStepGallons
	tankeringPolicy.MinSavingsUSD = cfg.TankeringMinSavingsUSD
	windPolicy := planning.DefaultWindPolicy()

	// Feeds with resilience (backoff + circuit breaker).
	var (
		fuelFeed       *feeds.FuelPriceFeed
		windsFeed      *feeds.WindsAloftFeed
		turbulenceFeed *feeds.TurbulenceFeed
	)
	if cfg.FuelPriceFeedURL != "" {
		fuelFeed = feeds.NewFuelPriceFeed(httpClient, cfg.FuelPriceFeedURL, cfg.Airports)
	}
	if cfg.WindsAloftFeedURL != "" {
		windsFeed = feeds.NewWindsAloftFeed(httpClient, cfg.WindsAloftFeedURL, windPolicy.CandidateAltitudesFt)
	}
	if cfg.TurbulenceFeedURL != "" {
		turbulenceFeed = feeds.NewTurbulenceFeed(httpClient, cfg.TurbulenceFeedURL)
	}

	feedService := feeds.NewService(memStore, fuelFeed, windsFeed, turbulenceFeed)

	// Scheduler that periodically refreshes every feed.
	sched := scheduler.New(feedService, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Decision components reading from the store.
	api := httpapi.API{
		Fuel:       planning.NewFuelEconomicsEngine(memStore, tankeringPolicy),
		Wind:       planning.NewRouteWindOptimizer(memStore, windPolicy),
		Turbulence: planning.NewTurbulenceRiskAssessor(memStore, planning.DefaultTurbulencePolicy()),
		Airports:   airports.NewDirectory(cfg.GeocoderAPIKey),
		Store:      memStore,
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "flight-advisor",
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
			"service": "flight-advisor",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, api)

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
