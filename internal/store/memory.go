package store

import (
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrNotFound is returned when no fresh forecast is cached for a key.
var ErrNotFound = weather.ErrNotFound

type entry struct {
	forecast weather.Forecast
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory forecast cache.
type MemoryStore struct {
	mu sync.RWMutex

	// key: request key, value: cached forecast
	data map[string]entry
	// insertion order, oldest first
	keys []string

	// retention configuration
	maxEntries int           // max number of cached forecasts
	maxAge     time.Duration // optional max age for cached forecasts

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save stores a forecast under key and enforces retention.
func (s *MemoryStore) Save(key string, forecast weather.Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		s.removeKey(key)
	}
	s.data[key] = entry{forecast: forecast, storedAt: s.now()}
	s.keys = append(s.keys, key)

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.keys); i++ {
			if !s.data[s.keys[i]].storedAt.Before(cutoff) {
				break
			}
			delete(s.data, s.keys[i])
		}
		s.keys = s.keys[i:]
	}

	// Enforce retention by count.
	if s.maxEntries > 0 && len(s.keys) > s.maxEntries {
		over := len(s.keys) - s.maxEntries
		for _, k := range s.keys[:over] {
			delete(s.data, k)
		}
		s.keys = s.keys[over:]
	}
}

// Get returns the cached forecast for key if it is still fresh.
func (s *MemoryStore) Get(key string) (weather.Forecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return weather.Forecast{}, ErrNotFound
	}
	if s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge {
		return weather.Forecast{}, ErrNotFound
	}
	return e.forecast, nil
}

// Len reports how many forecasts are cached, stale ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) removeKey(key string) {
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}
