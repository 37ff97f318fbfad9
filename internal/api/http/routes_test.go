package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/sources"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Forecast(context.Context, weather.Request) (weather.Forecast, error) {
	return weather.Forecast{}, errors.New("upstream unavailable")
}

// newTestApp serves a 7/7 day window around Sunday 2024-07-14.
func newTestApp(t *testing.T, source weather.Source) *fiber.App {
	t.Helper()

	policy, err := calendar.NewPolicy(7, 7, time.UTC, fixedClock{now: time.Date(2024, time.July, 14, 9, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatal(err)
	}
	svc := weather.NewService(store.NewMemoryStore(10, time.Hour), source)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Deps{
		Dashboard: dashboard.New(policy, svc, "New York"),
		Forecasts: svc,
		Policy:    policy,
		Source:    svc.SourceName(),
	})
	return app
}

func mockSource() weather.Source {
	return sources.NewMock(rand.New(rand.NewPCG(7, 7)))
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestForecastDateValidation(t *testing.T) {
	app := newTestApp(t, mockSource())

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing_location", "/api/v1/weather/forecast", http.StatusBadRequest},
		{"bad_format", "/api/v1/weather/forecast?location=Paris&date=14-07-2024", http.StatusBadRequest},
		{"too_far_ahead", "/api/v1/weather/forecast?location=Paris&date=2024-07-22", http.StatusBadRequest},
		{"too_far_back", "/api/v1/weather/forecast?location=Paris&date=2024-07-06", http.StatusBadRequest},
		{"last_day", "/api/v1/weather/forecast?location=Paris&date=2024-07-21", http.StatusOK},
		{"today", "/api/v1/weather/forecast?location=Paris", http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, body := do(t, app, test.target)
			if resp.StatusCode != test.status {
				t.Fatalf("expected status %d, got %d: %s", test.status, resp.StatusCode, body)
			}
		})
	}
}

func TestForecastReturnsForecast(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/api/v1/weather/forecast?location=Paris&date=2024-07-15")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var f weather.Forecast
	if err := json.Unmarshal(body, &f); err != nil {
		t.Fatal(err)
	}
	if f.LocationName != "Paris" || f.DisplayDate != "Monday, July 15" || len(f.Hourly) != weather.HourlyCount {
		t.Fatalf("unexpected forecast: %s %s %d", f.LocationName, f.DisplayDate, len(f.Hourly))
	}
}

func TestForecastUpstreamFailureIsBadGateway(t *testing.T) {
	app := newTestApp(t, failingSource{})

	resp, body := do(t, app, "/api/v1/weather/forecast?location=Paris")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", resp.StatusCode, body)
	}
	var payload struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Error || !strings.Contains(payload.Message, "upstream unavailable") {
		t.Fatalf("unexpected error payload: %+v", payload)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/api/v1/dashboard?location=Oslo&current=2024-07-16&date=2024-07-30")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var v dashboard.View
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatal(err)
	}
	if v.SelectedDate != "2024-07-16" || v.Notice == nil || v.Notice.Title != "Date out of range" {
		t.Fatalf("expected rejected date with notice, got %s %+v", v.SelectedDate, v.Notice)
	}
	if v.Theme.CSS == "" || len(v.Daily) != weather.DailyCount {
		t.Fatalf("incomplete view: %+v", v)
	}
}

func TestDashboardFailureFallsBackToDefaultTheme(t *testing.T) {
	app := newTestApp(t, failingSource{})

	resp, body := do(t, app, "/api/v1/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var v dashboard.View
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatal(err)
	}
	if v.Theme.Key != "default" || v.Error == nil || v.Query != "New York" {
		t.Fatalf("unexpected view: key=%s err=%+v query=%s", v.Theme.Key, v.Error, v.Query)
	}
}

func TestThemeEndpoint(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/api/v1/theme?condition=Partly%20Cloudy")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var payload struct {
		Style struct {
			Key  string `json:"key"`
			Mode string `json:"mode"`
		} `json:"style"`
		Variables map[string]string `json:"variables"`
		Icon      string            `json:"icon"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Style.Key != "partly_cloudy" || payload.Style.Mode != "light" {
		t.Fatalf("unexpected style %+v", payload.Style)
	}
	if _, ok := payload.Variables["--primary-foreground"]; !ok {
		t.Fatalf("missing kebab-case variables: %v", payload.Variables)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/api/v1/calendar?date=2024-07-21")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var payload struct {
		MinDate  string `json:"minDate"`
		MaxDate  string `json:"maxDate"`
		Date     struct{ Disabled bool }
		Previous struct{ Disabled bool }
		Next     struct {
			Date     string
			Disabled bool
		}
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.MinDate != "2024-07-07" || payload.MaxDate != "2024-07-21" {
		t.Fatalf("unexpected bounds %s..%s", payload.MinDate, payload.MaxDate)
	}
	if payload.Date.Disabled || payload.Previous.Disabled || !payload.Next.Disabled || payload.Next.Date != "2024-07-22" {
		t.Fatalf("unexpected states %+v", payload)
	}
}

func TestDeprecatedWeatherRoute(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/api/weather")
	if resp.StatusCode != http.StatusGone {
		t.Fatalf("expected 410, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "deprecated") {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestPageRendersHTML(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/?location=Lisbon")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.Contains(string(body), "Lisbon") || !strings.Contains(string(body), ":root{--background:") {
		t.Fatal("page missing location or theme variables")
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, mockSource())

	resp, body := do(t, app, "/health")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"source":"mock"`) {
		t.Fatalf("unexpected health response %d %s", resp.StatusCode, body)
	}
}
