package sources

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var mockConditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Light Rain", "Heavy Rain", "Fog", "Snow"}

// Mock generates plausible random forecasts without any network access.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a Mock. A nil rng uses a time-seeded generator.
func NewMock(rng *rand.Rand) *Mock {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Mock{rng: rng}
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Forecast(ctx context.Context, req weather.Request) (weather.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return weather.Forecast{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	base := req.Date
	if base.IsZero() {
		base = time.Now()
	}
	dayStart := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	name := req.Location
	if name == "" {
		name = "Mock City, MC"
	}

	baseTemp := m.number(5, 25)

	f := weather.Forecast{
		LocationName: name,
		DisplayDate:  weather.DisplayDate(dayStart),
		Current: weather.Current{
			Temperature:   m.number(baseTemp-2, baseTemp+5),
			Condition:     m.condition(),
			MaxTemp:       m.number(baseTemp+3, baseTemp+8),
			MinTemp:       m.number(baseTemp-5, baseTemp),
			WindSpeed:     m.number(1, 20),
			WindDirection: m.pick(compassPoints),
			SunriseTime:   "06:00 AM",
			SunsetTime:    "08:00 PM",
			Humidity:      m.whole(30, 90),
			UVIndex:       uvLabel(m.whole(0, 11)),
		},
		Hourly: make([]weather.HourlyItem, 0, weather.HourlyCount),
		Daily:  make([]weather.DailyItem, 0, weather.DailyCount),
		Source: m.Name(),
	}

	for i := 0; i < weather.HourlyCount; i++ {
		hour := dayStart.Add(time.Duration(i) * time.Hour)
		h := float64(i)
		f.Hourly = append(f.Hourly, weather.HourlyItem{
			Time:          weather.HourLabel(hour),
			Temperature:   m.number(baseTemp-5+h/2, baseTemp+5+h/3),
			Condition:     m.condition(),
			UVIndex:       uvLabel(m.whole(0, min(11, max(0, h-6)))),
			WindSpeed:     m.number(1, 25),
			WindDirection: m.pick(compassPoints),
			RainChance:    m.whole(0, 100),
			Humidity:      m.whole(30, 95),
		})
	}

	for i := 0; i < weather.DailyCount; i++ {
		day := dayStart.AddDate(0, 0, i)
		dayTemp := baseTemp + m.number(-3, 3)
		f.Daily = append(f.Daily, weather.DailyItem{
			Date:      day.Format(time.DateOnly),
			DayName:   day.Weekday().String(),
			Condition: m.condition(),
			MaxTemp:   m.number(dayTemp+2, dayTemp+7),
			MinTemp:   m.number(dayTemp-6, dayTemp-1),
		})
	}

	return f, nil
}

func (m *Mock) condition() weather.Condition {
	return weather.Condition{Text: m.pick(mockConditions)}
}

func (m *Mock) pick(items []string) string {
	return items[m.rng.IntN(len(items))]
}

// number returns a value in [lo, hi) rounded to one decimal.
func (m *Mock) number(lo, hi float64) float64 {
	return round1(lo + m.rng.Float64()*(hi-lo))
}

// whole returns a rounded value in [lo, hi].
func (m *Mock) whole(lo, hi float64) float64 {
	return float64(int(lo + m.rng.Float64()*(hi-lo) + 0.5))
}
