package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/sources"
)

func setupLogger(cfg *config.AppConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newSource picks the forecast source named in the configuration.
func newSource(cfg *config.AppConfig, httpCfg sources.HTTPClientConfig) (weather.Source, error) {
	switch cfg.ForecastSource {
	case config.SourceMock:
		return sources.NewMock(nil), nil
	case config.SourceOpenMeteo:
		var geo sources.Geocoder = sources.NewOpenMeteoGeocoder(httpCfg)
		if cfg.GeocoderAPIKey != "" {
			geo = sources.NewGoogleGeocoder(cfg.GeocoderAPIKey)
		}
		return sources.NewOpenMeteo(httpCfg, geo), nil
	case config.SourceWeatherAPI:
		return sources.NewWeatherAPI(httpCfg, cfg.WeatherAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown forecast source %q", cfg.ForecastSource)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server terminated with error")
	}
}

// run returns instead of exiting so that deferred cleanup always runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	setupLogger(cfg)

	location, err := cfg.TimeLocation()
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}

	// Shared HTTP client and limiter for outbound calls.
	httpCfg := sources.HTTPClientConfig{
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
	if cfg.UpstreamRatePerSecond > 0 {
		httpCfg.Limiter = rate.NewLimiter(rate.Limit(cfg.UpstreamRatePerSecond), 1)
	}

	source, err := newSource(cfg, httpCfg)
	if err != nil {
		return fmt.Errorf("create forecast source: %w", err)
	}

	memStore := store.NewMemoryStore(cfg.CacheMaxEntries, cfg.CacheMaxAge)
	service := weather.NewService(memStore, source)

	policy, err := calendar.NewPolicy(cfg.PastLimitDays, cfg.FutureLimitDays, location, nil)
	if err != nil {
		return fmt.Errorf("create date policy: %w", err)
	}

	sched := scheduler.New(cfg.Locations, cfg.PrefetchInterval, service, policy.Today)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Dashboard: dashboard.New(policy, service, cfg.DefaultLocation),
		Forecasts: service,
		Policy:    policy,
		Source:    service.SourceName(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("source", service.SourceName()).
			Str("timezone", location.String()).
			Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
