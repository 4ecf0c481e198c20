package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// HTTPTimeout bounds outbound calls to the weather provider.
	HTTPTimeout time.Duration

	// GeoTimeout bounds the geolocation lookup.
	GeoTimeout time.Duration

	// ForecastDays is how many daily entries to request per location.
	ForecastDays int

	// StateDBPath is where the persisted location list lives.
	StateDBPath string

	// AutoRefreshInterval controls the background refresh; zero disables it.
	AutoRefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	httpTimeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	geoTimeoutStr := getenvDefault("GEO_TIMEOUT", "8s")
	geoTimeout, err := time.ParseDuration(geoTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEO_TIMEOUT: %w", err)
	}
	cfg.GeoTimeout = geoTimeout

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 3)

	cfg.StateDBPath = getenvDefault("STATE_DB_PATH", "data/weather-dashboard.db")

	// Background refresh is off by default; the original surface only had a
	// manual refresh control.
	refreshStr := getenvDefault("AUTO_REFRESH_INTERVAL", "0")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_REFRESH_INTERVAL: %w", err)
	}
	cfg.AutoRefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
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
