package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Service fronts a forecast source with a cache.
type Service struct {
	store  Store
	source Source
	now    func() time.Time
}

// NewService creates a new Service. store may be nil to disable caching.
func NewService(store Store, source Source) *Service {
	return &Service{
		store:  store,
		source: source,
		now:    time.Now,
	}
}

// SourceName reports which source backs the service.
func (s *Service) SourceName() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Forecast returns the cached forecast for req or fetches it once from the source.
func (s *Service) Forecast(ctx context.Context, req Request) (Forecast, error) {
	if strings.TrimSpace(req.Location) == "" {
		return Forecast{}, ErrLocationRequired
	}

	key := req.Key()
	if s.store != nil {
		f, err := s.store.Get(key)
		if err == nil {
			log.Debug().Str("key", key).Msg("forecast cache hit")
			return f, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("forecast cache lookup failed")
		}
	}

	return s.fetchAndStore(ctx, req)
}

// Prefetch refreshes the cache for req regardless of what is cached.
func (s *Service) Prefetch(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.Location) == "" {
		return ErrLocationRequired
	}
	_, err := s.fetchAndStore(ctx, req)
	return err
}

func (s *Service) fetchAndStore(ctx context.Context, req Request) (Forecast, error) {
	if s.source == nil {
		return Forecast{}, fmt.Errorf("%w: no forecast source configured", ErrFetchFailed)
	}

	log.Debug().
		Str("source", s.source.Name()).
		Str("location", req.Location).
		Str("date", req.Date.Format(time.DateOnly)).
		Msg("fetching forecast")

	f, err := s.source.Forecast(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("source", s.source.Name()).Str("location", req.Location).Msg("forecast fetch failed")
		return Forecast{}, fmt.Errorf("%w: %s: %w", ErrFetchFailed, s.source.Name(), err)
	}

	if f.Source == "" {
		f.Source = s.source.Name()
	}
	if f.FetchedAt.IsZero() {
		f.FetchedAt = s.now().UTC()
	}
	if f.DisplayDate == "" {
		f.DisplayDate = DisplayDate(req.Date)
	}

	if s.store != nil {
		s.store.Save(req.Key(), f)
	}
	return f, nil
}
