package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore(10, time.Hour)

	if _, err := s.Get("paris|2024-07-14"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s.Save("paris|2024-07-14", weather.Forecast{LocationName: "Paris"})
	got, err := s.Get("paris|2024-07-14")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LocationName != "Paris" {
		t.Fatalf("LocationName = %q, want Paris", got.LocationName)
	}

	s.Save("paris|2024-07-14", weather.Forecast{LocationName: "Paris, FR"})
	got, _ = s.Get("paris|2024-07-14")
	if got.LocationName != "Paris, FR" || s.Len() != 1 {
		t.Fatalf("overwrite failed: %+v len=%d", got, s.Len())
	}
}

func TestMemoryStoreMaxEntries(t *testing.T) {
	s := NewMemoryStore(2, 0)

	s.Save("a", weather.Forecast{LocationName: "a"})
	s.Save("b", weather.Forecast{LocationName: "b"})
	s.Save("c", weather.Forecast{LocationName: "c"})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("oldest entry should be evicted, got %v", err)
	}
	if _, err := s.Get("c"); err != nil {
		t.Fatalf("newest entry missing: %v", err)
	}
}

func TestMemoryStoreMaxAge(t *testing.T) {
	now := time.Date(2024, time.July, 14, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, 10*time.Minute)
	s.now = func() time.Time { return now }

	s.Save("old", weather.Forecast{})

	now = now.Add(11 * time.Minute)
	if _, err := s.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale entry should not be served, got %v", err)
	}

	s.Save("new", weather.Forecast{})
	if s.Len() != 1 {
		t.Fatalf("stale entry should be pruned on save, Len() = %d", s.Len())
	}
}
