package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Prefetcher refreshes the cached forecast for a request.
type Prefetcher interface {
	Prefetch(ctx context.Context, req weather.Request) error
}

// Scheduler periodically warms the forecast cache for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Prefetcher
	locations []string
	interval  time.Duration
	today     func() time.Time
	timeout   time.Duration
}

// New creates a new Scheduler. today returns the date to prefetch, normally
// the start of the current day in the dashboard's time zone.
func New(locations []string, interval time.Duration, service Prefetcher, today func() time.Time) *Scheduler {
	if today == nil {
		today = time.Now
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		today:     today,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Info().Msg("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Info().Int("locations", len(s.locations)).Int("every_minutes", minutes).Msg("scheduler started")
	return nil
}

// RunOnce prefetches every location concurrently and returns how many failed.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	date := s.today()
	log.Debug().Str("date", date.Format(time.DateOnly)).Msg("scheduler: running prefetch job")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := s.service.Prefetch(ctx, weather.Request{Location: loc, Date: date}); err != nil {
				log.Warn().Err(err).Str("location", loc).Msg("scheduler: prefetch failed")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	log.Debug().Int("failed", failed).Msg("scheduler: completed prefetch job")
	return failed
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
