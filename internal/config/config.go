package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Tracked airports for the fuel price feed.
	Airports []string

	// Upstream feed endpoints. Empty disables the feed.
	FuelPriceFeedURL  string
	WindsAloftFeedURL string
	TurbulenceFeedURL string

	// GeocoderAPIKey enables coordinate lookups for airports outside the
	// static directory.
	GeocoderAPIKey string

	// RefreshInterval controls how often feeds are refreshed.
	RefreshInterval time.Duration

	// Outbound HTTP timeout shared by all feeds.
	HTTPTimeout time.Duration

	// In-memory store retention for fuel price history.
	StoreMaxHistory int           // max quotes per airport (0 = unlimited)
	StoreMaxAge     time.Duration // max quote age (0 = unlimited)

	// Tankering policy overrides; see planning.DefaultTankeringPolicy.
	TankeringStepGallons   float64
	TankeringMinSavingsUSD float64

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.FuelPriceFeedURL = os.Getenv("FUELPRICE_FEED_URL")
	cfg.WindsAloftFeedURL = os.Getenv("WINDSALOFT_FEED_URL")
	cfg.TurbulenceFeedURL = os.Getenv("TURBULENCE_FEED_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Store retention: roughly 30 days of daily quotes by default.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 90)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "720h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.TankeringStepGallons = getenvFloat("TANKERING_STEP_GALLONS", 100)
	if cfg.TankeringStepGallons <= 0 {
		return nil, fmt.Errorf("TANKERING_STEP_GALLONS must be positive")
	}
	cfg.TankeringMinSavingsUSD = getenvFloat("TANKERING_MIN_SAVINGS_USD", 50)

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Airports = splitList(getenvDefault("AIRPORTS", "PTY,BOG"))
	if len(cfg.Airports) == 0 {
		return nil, fmt.Errorf("AIRPORTS must list at least one airport code")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
