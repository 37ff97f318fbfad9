package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	SourceMock       = "mock"
	SourceOpenMeteo  = "openmeteo"
	SourceWeatherAPI = "weatherapi"
)

type AppConfig struct {
	Port        string `yaml:"port" validate:"required,numeric"`
	Environment string `yaml:"environment" validate:"oneof=development production test"`

	// ForecastSource selects the upstream forecast provider.
	ForecastSource string `yaml:"forecast_source" validate:"oneof=mock openmeteo weatherapi"`
	WeatherAPIKey  string `yaml:"weatherapi_api_key" validate:"required_if=ForecastSource weatherapi"`
	GeocoderAPIKey string `yaml:"geocoder_api_key"`

	HTTPTimeout           time.Duration `yaml:"http_timeout" validate:"gt=0"`
	UpstreamRatePerSecond float64       `yaml:"upstream_rate_per_second" validate:"gte=0"`

	// Selectable date window around today.
	PastLimitDays   int    `yaml:"date_past_limit_days" validate:"gte=0"`
	FutureLimitDays int    `yaml:"date_future_limit_days" validate:"gte=0"`
	Timezone        string `yaml:"timezone"`

	DefaultLocation string   `yaml:"default_location" validate:"required"`
	Locations       []string `yaml:"locations"`

	PrefetchInterval time.Duration `yaml:"prefetch_interval" validate:"gte=0"`

	// In-memory cache retention.
	CacheMaxEntries int           `yaml:"cache_max_entries" validate:"gte=0"` // 0 = unlimited
	CacheMaxAge     time.Duration `yaml:"cache_max_age" validate:"gte=0"`     // 0 = unlimited

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// TimeLocation loads the configured time zone. An empty name means local time.
func (c *AppConfig) TimeLocation() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:             "8080",
		Environment:      "development",
		ForecastSource:   SourceMock,
		HTTPTimeout:      10 * time.Second,
		PastLimitDays:    7,
		FutureLimitDays:  7,
		DefaultLocation:  "New York",
		PrefetchInterval: 15 * time.Minute,
		CacheMaxEntries:  256,
		CacheMaxAge:      10 * time.Minute,
		ShutdownTimeout:  10 * time.Second,
	}
}

var validate = validator.New()

// Load reads configuration from an optional YAML file (CONFIG_FILE) and the
// environment. Environment variables win over file values.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.TimeLocation(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.Environment = getenvDefault("ENVIRONMENT", cfg.Environment)
	cfg.ForecastSource = strings.ToLower(getenvDefault("FORECAST_SOURCE", cfg.ForecastSource))
	cfg.WeatherAPIKey = getenvDefault("WEATHERAPI_API_KEY", cfg.WeatherAPIKey)
	cfg.GeocoderAPIKey = getenvDefault("GEOCODER_API_KEY", cfg.GeocoderAPIKey)
	cfg.Timezone = getenvDefault("TIMEZONE", cfg.Timezone)
	cfg.DefaultLocation = getenvDefault("DEFAULT_LOCATION", cfg.DefaultLocation)

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg.PastLimitDays = getenvInt("DATE_PAST_LIMIT_DAYS", cfg.PastLimitDays, collect)
	cfg.FutureLimitDays = getenvInt("DATE_FUTURE_LIMIT_DAYS", cfg.FutureLimitDays, collect)
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries, collect)

	cfg.HTTPTimeout = getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout, collect)
	cfg.PrefetchInterval = getenvDuration("PREFETCH_INTERVAL", cfg.PrefetchInterval, collect)
	cfg.CacheMaxAge = getenvDuration("CACHE_MAX_AGE", cfg.CacheMaxAge, collect)
	cfg.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, collect)

	if v := os.Getenv("UPSTREAM_RATE_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			collect(fmt.Errorf("invalid UPSTREAM_RATE_PER_SECOND: %w", err))
		} else {
			cfg.UpstreamRatePerSecond = rps
		}
	}

	if v, ok := os.LookupEnv("WEATHER_LOCATIONS"); ok {
		cfg.Locations = splitLocations(v)
	}

	return errors.Join(errs...)
}

// splitLocations splits a ";"-separated list such as "Paris, FR;Tokyo, JP".
// Commas stay inside an entry since queries may be "City, Country" or "lat,lon".
func splitLocations(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
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

func getenvInt(key string, def int, onErr func(error)) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		onErr(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration, onErr func(error)) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		onErr(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return d
}
