package dashboard

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/theme"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/sources"
)

// Forecaster returns the forecast for a location and date.
type Forecaster interface {
	Forecast(ctx context.Context, req weather.Request) (weather.Forecast, error)
}

// Query is one dashboard interaction: the location searched for, the date
// currently shown and, optionally, a newly requested date.
type Query struct {
	Location string
	// Current is the date shown before this request; zero means today.
	Current time.Time
	// Date is the newly requested date, if any.
	Date *time.Time
	// FromDaily marks Date as picked from the daily outlook list.
	FromDaily bool

	HideWind   bool
	HideClouds bool
}

type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DayLink is a previous/next navigation target.
type DayLink struct {
	Date    string `json:"date"`
	Enabled bool   `json:"enabled"`
}

type Navigation struct {
	Previous DayLink `json:"previous"`
	Next     DayLink `json:"next"`
	MinDate  string  `json:"minDate"`
	MaxDate  string  `json:"maxDate"`
	Today    string  `json:"today"`
}

type ThemeView struct {
	Key                theme.Name        `json:"key"`
	Name               string            `json:"name"`
	Mode               theme.Mode        `json:"mode"`
	Variables          map[string]string `json:"variables"`
	CSS                string            `json:"css"`
	BackgroundImageURL string            `json:"backgroundImageUrl"`
	AccessibilityHint  string            `json:"accessibilityHint"`
	ThemeColor         string            `json:"themeColor"`
}

type HourlyView struct {
	weather.HourlyItem
	Icon string `json:"icon"`
}

type DailyView struct {
	weather.DailyItem
	Icon       string `json:"icon"`
	Selected   bool   `json:"selected"`
	Selectable bool   `json:"selectable"`
}

// ChartPoint is one day of the temperature variation chart.
type ChartPoint struct {
	Name    string  `json:"name"` // "Mon, Jul 14"
	MaxTemp float64 `json:"maxTemp"`
	MinTemp float64 `json:"minTemp"`
}

// View is everything needed to render the dashboard once.
type View struct {
	Query        string     `json:"query"`
	LocationName string     `json:"locationName"`
	SelectedDate string     `json:"selectedDate"`
	DisplayDate  string     `json:"displayDate"`
	CurrentTime  string     `json:"currentTime"`
	Notice       *Notice    `json:"notice,omitempty"`
	Error        *Notice    `json:"error,omitempty"`
	Theme        ThemeView  `json:"theme"`
	Navigation   Navigation `json:"navigation"`

	Current     *weather.Current `json:"current,omitempty"`
	CurrentIcon string           `json:"currentIcon,omitempty"`
	Hourly      []HourlyView     `json:"hourly"`
	Daily       []DailyView      `json:"daily"`
	Chart       []ChartPoint     `json:"chart"`
	MapURL      string           `json:"mapUrl,omitempty"`
	Source      string           `json:"source,omitempty"`
}

// Controller assembles dashboard views from the date policy, the forecast
// service and the theme registry.
type Controller struct {
	policy          *calendar.Policy
	forecasts       Forecaster
	defaultLocation string
}

func New(policy *calendar.Policy, forecasts Forecaster, defaultLocation string) *Controller {
	return &Controller{
		policy:          policy,
		forecasts:       forecasts,
		defaultLocation: defaultLocation,
	}
}

// Policy exposes the date window policy used by the controller.
func (c *Controller) Policy() *calendar.Policy {
	return c.policy
}

// Build runs one dashboard interaction. It never fails: upstream errors are
// reported in View.Error and the default theme is applied.
func (c *Controller) Build(ctx context.Context, q Query) View {
	window := c.policy.Window()
	loc := c.policy.Location()

	query := strings.TrimSpace(q.Location)
	if query == "" {
		query = c.defaultLocation
	}

	// A stale or forged current date that left the window falls back to today.
	selected := window.Today
	if !q.Current.IsZero() {
		if day, err := calendar.ClampOrReject(q.Current.In(loc), window); err == nil {
			selected = day
		}
	}

	v := View{
		Query:       query,
		CurrentTime: c.policy.Now().Format(time.TimeOnly),
	}

	if q.Date != nil {
		day, err := calendar.ClampOrReject(*q.Date, window)
		switch {
		case err == nil:
			selected = day
		case errors.Is(err, calendar.ErrDateOutOfRange):
			v.Notice = &Notice{Title: "Date out of range", Description: c.policy.Describe()}
			if q.FromDaily {
				v.Notice.Description = "Cannot select this date from the daily forecast as it's out of the allowed range."
			}
		}
	}

	v.SelectedDate = selected.Format(time.DateOnly)
	v.Navigation = navigation(selected, window)

	style := theme.DefaultStyle()
	f, err := c.forecasts.Forecast(ctx, weather.Request{Location: query, Date: selected})
	if err != nil {
		log.Warn().Err(err).Str("location", query).Str("date", v.SelectedDate).Msg("dashboard forecast failed")
		v.Error = &Notice{Title: "Error Fetching Weather", Description: errorMessage(err)}
		v.LocationName = fallbackLocationName(query)
		v.DisplayDate = weather.DisplayDate(selected)
	} else {
		style = theme.Resolve(f.Current.Condition.Text)
		c.fillForecast(&v, f, selected, window, q)
	}

	v.Theme = themeView(style)
	return v
}

func (c *Controller) fillForecast(v *View, f weather.Forecast, selected time.Time, window calendar.Window, q Query) {
	v.LocationName = f.LocationName
	if v.LocationName == "" {
		v.LocationName = fallbackLocationName(v.Query)
	}
	v.DisplayDate = f.DisplayDate
	if v.DisplayDate == "" {
		v.DisplayDate = weather.DisplayDate(selected)
	}
	v.Source = f.Source

	cur := f.Current
	v.Current = &cur
	v.CurrentIcon = theme.Icon(cur.Condition.Text)

	v.Hourly = make([]HourlyView, 0, len(f.Hourly))
	for _, h := range f.Hourly {
		v.Hourly = append(v.Hourly, HourlyView{HourlyItem: h, Icon: theme.Icon(h.Condition.Text)})
	}

	v.Daily = make([]DailyView, 0, len(f.Daily))
	for _, d := range f.Daily {
		dv := DailyView{DailyItem: d, Icon: theme.Icon(d.Condition.Text), Selected: d.Date == v.SelectedDate}
		if day, err := c.policy.ParseDate(d.Date); err == nil {
			dv.Selectable = window.Contains(day)
		}
		v.Daily = append(v.Daily, dv)
	}
	v.Chart = chartSeries(f.Daily)

	if f.Latitude != nil && f.Longitude != nil {
		v.MapURL = MapURL(*f.Latitude, *f.Longitude, !q.HideWind, !q.HideClouds)
	}
}

func navigation(selected time.Time, window calendar.Window) Navigation {
	prev := calendar.PreviousDay(selected)
	next := calendar.NextDay(selected)
	return Navigation{
		Previous: DayLink{Date: prev.Format(time.DateOnly), Enabled: !calendar.IsDateDisabled(prev, window)},
		Next:     DayLink{Date: next.Format(time.DateOnly), Enabled: !calendar.IsDateDisabled(next, window)},
		MinDate:  window.MinDate().Format(time.DateOnly),
		MaxDate:  window.MaxDate().Format(time.DateOnly),
		Today:    window.Today.Format(time.DateOnly),
	}
}

// themeView applies style to a fresh surface and reads the result back.
func themeView(style theme.Style) ThemeView {
	surface := theme.NewSurface()
	theme.Apply(style, surface)
	return ThemeView{
		Key:                style.Key,
		Name:               style.Name,
		Mode:               surface.Mode(),
		Variables:          surface.Variables(),
		CSS:                surface.CSS(),
		BackgroundImageURL: style.BackgroundImageURL,
		AccessibilityHint:  style.AccessibilityHint,
		ThemeColor:         style.ThemeColor(),
	}
}

func chartSeries(days []weather.DailyItem) []ChartPoint {
	points := make([]ChartPoint, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(time.DateOnly, d.Date)
		if err != nil {
			continue
		}
		points = append(points, ChartPoint{
			Name:    t.Format("Mon, Jan 2"),
			MaxTemp: math.Round(d.MaxTemp*10) / 10,
			MinTemp: math.Round(d.MinTemp*10) / 10,
		})
	}
	return points
}

// fallbackLocationName is shown when no forecast names the location.
// Coordinate queries come from the browser's live location.
func fallbackLocationName(query string) string {
	if p, ok := sources.ParseCoordinates(query); ok {
		return p.Name
	}
	return query
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, weather.ErrLocationRequired):
		return "Please enter a location."
	case errors.Is(err, context.DeadlineExceeded):
		return "The weather service took too long to respond. Please try again later."
	case errors.Is(err, sources.ErrLocationNotFound):
		return "The location could not be found. Please check the spelling or try a nearby city."
	case common.ContainsFold(err.Error(), "quota exceeded"), common.ContainsFold(err.Error(), "rate limited"):
		return "The weather service quota has been exceeded. Please try again later."
	case common.ContainsFold(err.Error(), "api key"):
		return "The API key for the weather service is invalid or missing. Please check your configuration."
	default:
		return "Failed to load weather data. " + err.Error()
	}
}
