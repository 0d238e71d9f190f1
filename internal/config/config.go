package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// BaseURL is the weather page backend serving /suggestions, /weather and
	// /reverse-geocoding.
	BaseURL     string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	// PageURL is the origin the page is considered served from; it decides
	// whether location sensing is allowed.
	PageURL *url.URL

	// Preference storage.
	PrefsDBPath        string // "memory" keeps preferences in process only
	PrefsSweepInterval time.Duration

	// Suggestion search.
	SuggestDebounce time.Duration `validate:"gt=0"`
	SuggestRPS      float64       `validate:"gte=0"`
	SuggestBurst    int           `validate:"gte=1"`

	// Location sensing and naming.
	GeocoderAPIKey string
	IPGeoURL       string `validate:"omitempty,url"`
	StaticLat      string `validate:"omitempty,latitude"`
	StaticLon      string `validate:"omitempty,longitude"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.BaseURL = getenvDefault("WEATHER_BASE_URL", "http://localhost:8080")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.IPGeoURL = os.Getenv("IPGEO_URL")
	cfg.StaticLat = os.Getenv("STATIC_LAT")
	cfg.StaticLon = os.Getenv("STATIC_LON")
	cfg.PrefsDBPath = getenvDefault("PREFS_DB_PATH", "weather-lookup.db")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.PrefsSweepInterval, err = getenvDuration("PREFS_SWEEP_INTERVAL", "24h"); err != nil {
		return nil, err
	}
	if cfg.SuggestDebounce, err = getenvDuration("SUGGEST_DEBOUNCE", "300ms"); err != nil {
		return nil, err
	}

	cfg.SuggestRPS = getenvFloat("SUGGEST_RPS", 5)
	cfg.SuggestBurst = getenvInt("SUGGEST_BURST", 3)

	// The page is served by the backend unless told otherwise.
	pageURL := getenvDefault("PAGE_URL", cfg.BaseURL)
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_URL: %w", err)
	}
	cfg.PageURL = u

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if (cfg.StaticLat == "") != (cfg.StaticLon == "") {
		return nil, fmt.Errorf("STATIC_LAT and STATIC_LON must be set together")
	}

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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
