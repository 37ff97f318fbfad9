package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "ENVIRONMENT", "FORECAST_SOURCE", "WEATHERAPI_API_KEY",
	"GEOCODER_API_KEY", "HTTP_TIMEOUT", "DATE_PAST_LIMIT_DAYS", "DATE_FUTURE_LIMIT_DAYS",
	"TIMEZONE", "DEFAULT_LOCATION", "WEATHER_LOCATIONS", "PREFETCH_INTERVAL",
	"CACHE_MAX_ENTRIES", "CACHE_MAX_AGE", "UPSTREAM_RATE_PER_SECOND", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every key Load reads; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.ForecastSource != SourceMock || cfg.DefaultLocation != "New York" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PastLimitDays != 7 || cfg.FutureLimitDays != 7 {
		t.Fatalf("unexpected window: %d/%d", cfg.PastLimitDays, cfg.FutureLimitDays)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development environment by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("FORECAST_SOURCE", "OpenMeteo")
	t.Setenv("DATE_PAST_LIMIT_DAYS", "3")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("WEATHER_LOCATIONS", "Paris, FR; 40.7,-74.0 ;")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.ForecastSource != SourceOpenMeteo || cfg.PastLimitDays != 3 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if len(cfg.Locations) != 2 || cfg.Locations[0] != "Paris, FR" || cfg.Locations[1] != "40.7,-74.0" {
		t.Fatalf("Locations = %q", cfg.Locations)
	}
	loc, err := cfg.TimeLocation()
	if err != nil || loc != time.UTC {
		t.Fatalf("TimeLocation = %v, %v", loc, err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7000\"\ndate_future_limit_days: 14\nprefetch_interval: 5m\nlocations:\n  - Oslo, NO\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7100" {
		t.Fatalf("env should override file, got port %q", cfg.Port)
	}
	if cfg.FutureLimitDays != 14 || cfg.PrefetchInterval != 5*time.Minute {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.Locations) != 1 || cfg.Locations[0] != "Oslo, NO" {
		t.Fatalf("Locations = %q", cfg.Locations)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad_int", "DATE_PAST_LIMIT_DAYS", "seven"},
		{"negative_limit", "DATE_FUTURE_LIMIT_DAYS", "-1"},
		{"bad_duration", "CACHE_MAX_AGE", "forever"},
		{"unknown_source", "FORECAST_SOURCE", "openweather"},
		{"bad_timezone", "TIMEZONE", "Mars/Olympus"},
		{"bad_port", "PORT", "http"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", test.key, test.val)
			}
		})
	}
}

func TestWeatherAPIRequiresKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORECAST_SOURCE", "weatherapi")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without WEATHERAPI_API_KEY")
	}

	t.Setenv("WEATHERAPI_API_KEY", "k")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
