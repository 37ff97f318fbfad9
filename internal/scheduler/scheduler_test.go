package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type recordingPrefetcher struct {
	mu   sync.Mutex
	seen []weather.Request
	fail map[string]bool
}

func (r *recordingPrefetcher) Prefetch(_ context.Context, req weather.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, req)
	if r.fail[req.Location] {
		return errors.New("boom")
	}
	return nil
}

func TestRunOncePrefetchesEveryLocation(t *testing.T) {
	day := time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC)
	p := &recordingPrefetcher{fail: map[string]bool{"Oslo": true}}
	s := New([]string{"Paris", "Oslo", "Lima"}, time.Minute, p, func() time.Time { return day })

	failed := s.RunOnce(context.Background())
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
	if len(p.seen) != 3 {
		t.Fatalf("prefetched %d locations, want 3", len(p.seen))
	}
	for _, req := range p.seen {
		if !req.Date.Equal(day) {
			t.Fatalf("unexpected date %v for %s", req.Date, req.Location)
		}
	}
}

func TestStartWithoutLocationsIsNoop(t *testing.T) {
	s := New(nil, time.Minute, &recordingPrefetcher{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
