package weather

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by stores when no usable forecast is cached.
	ErrNotFound = errors.New("no forecast cached for request")

	// ErrLocationRequired is returned when a request has no location.
	ErrLocationRequired = errors.New("location is required")

	// ErrFetchFailed wraps any failure of the forecast source.
	ErrFetchFailed = errors.New("forecast fetch failed")
)

// Source abstracts where forecasts come from (mock generator, Open-Meteo, WeatherAPI).
// A Source is called once per request; it must not retry on its own.
type Source interface {
	Name() string
	Forecast(ctx context.Context, req Request) (Forecast, error)
}

// Store is the contract the in-memory forecast cache must satisfy.
type Store interface {
	Save(key string, forecast Forecast)
	Get(key string) (Forecast, error)
}
