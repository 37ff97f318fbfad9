package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

const openMeteoHourly = "temperature_2m,relative_humidity_2m,precipitation_probability,weather_code,wind_speed_10m,wind_direction_10m,uv_index"
const openMeteoDaily = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,uv_index_max"
const openMeteoCurrent = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m"

// OpenMeteo implements weather.Source against the Open-Meteo forecast API.
type OpenMeteo struct {
	name     string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder Geocoder
	now      func() time.Time
}

func NewOpenMeteo(cfg HTTPClientConfig, geocoder Geocoder) *OpenMeteo {
	return &OpenMeteo{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		httpCfg:  cfg,
		circuit:  newCircuitBreaker("openmeteo"),
		geocoder: geocoder,
		now:      time.Now,
	}
}

func (p *OpenMeteo) Name() string {
	return p.name
}

type openMeteoPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// UTCOffsetSeconds is the offset of the location's zone, set by timezone=auto.
	UTCOffsetSeconds int `json:"utc_offset_seconds"`

	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
	} `json:"current"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Humidity      []float64 `json:"relative_humidity_2m"`
		RainChance    []float64 `json:"precipitation_probability"`
		WeatherCode   []int     `json:"weather_code"`
		WindSpeed     []float64 `json:"wind_speed_10m"`
		WindDirection []float64 `json:"wind_direction_10m"`
		UVIndex       []float64 `json:"uv_index"`
	} `json:"hourly"`
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		MaxTemp     []float64 `json:"temperature_2m_max"`
		MinTemp     []float64 `json:"temperature_2m_min"`
		Sunrise     []string  `json:"sunrise"`
		Sunset      []string  `json:"sunset"`
		UVIndexMax  []float64 `json:"uv_index_max"`
	} `json:"daily"`
}

func (p *OpenMeteo) Forecast(ctx context.Context, req weather.Request) (weather.Forecast, error) {
	if p.geocoder == nil {
		return weather.Forecast{}, fmt.Errorf("openmeteo requires a geocoder")
	}

	place, err := p.geocoder.Geocode(ctx, req.Location)
	if err != nil {
		return weather.Forecast{}, err
	}

	start := req.Date
	end := start.AddDate(0, 0, weather.DailyCount-1)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", place.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", place.Longitude))
		values.Set("hourly", openMeteoHourly)
		values.Set("daily", openMeteoDaily)
		values.Set("current", openMeteoCurrent)
		values.Set("timezone", "auto")
		values.Set("start_date", start.Format(time.DateOnly))
		values.Set("end_date", end.Format(time.DateOnly))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, err
	}

	lat, lon := payload.Latitude, payload.Longitude
	f := weather.Forecast{
		LocationName: place.Name,
		DisplayDate:  weather.DisplayDate(start),
		Latitude:     &lat,
		Longitude:    &lon,
		Hourly:       p.hourly(payload, start),
		Daily:        p.daily(payload),
		Source:       p.name,
		FetchedAt:    p.now().UTC(),
	}
	f.Current = p.current(payload, start, f.Hourly)
	return f, nil
}

// hourly keeps the 24 entries of the selected date.
func (p *OpenMeteo) hourly(payload openMeteoPayload, day time.Time) []weather.HourlyItem {
	h := payload.Hourly
	want := day.Format(time.DateOnly)
	items := make([]weather.HourlyItem, 0, weather.HourlyCount)

	for i, ts := range h.Time {
		t, err := time.Parse("2006-01-02T15:04", ts)
		if err != nil || t.Format(time.DateOnly) != want {
			continue
		}
		items = append(items, weather.HourlyItem{
			Time:          weather.HourLabel(t),
			Temperature:   at(h.Temperature, i),
			Condition:     weather.Condition{Text: wmoConditionText(atInt(h.WeatherCode, i))},
			UVIndex:       uvLabel(at(h.UVIndex, i)),
			WindSpeed:     at(h.WindSpeed, i),
			WindDirection: compassDirection(at(h.WindDirection, i)),
			RainChance:    at(h.RainChance, i),
			Humidity:      at(h.Humidity, i),
		})
		if len(items) == weather.HourlyCount {
			break
		}
	}
	return items
}

func (p *OpenMeteo) daily(payload openMeteoPayload) []weather.DailyItem {
	d := payload.Daily
	items := make([]weather.DailyItem, 0, weather.DailyCount)
	for i, ds := range d.Time {
		t, err := time.Parse(time.DateOnly, ds)
		if err != nil {
			continue
		}
		items = append(items, weather.DailyItem{
			Date:      ds,
			DayName:   t.Weekday().String(),
			Condition: weather.Condition{Text: wmoConditionText(atInt(d.WeatherCode, i))},
			MaxTemp:   at(d.MaxTemp, i),
			MinTemp:   at(d.MinTemp, i),
		})
		if len(items) == weather.DailyCount {
			break
		}
	}
	return items
}

// current uses live conditions when the selected date is today and the
// midday hour otherwise.
func (p *OpenMeteo) current(payload openMeteoPayload, day time.Time, hourly []weather.HourlyItem) weather.Current {
	d := payload.Daily
	c := weather.Current{
		MaxTemp:     at(d.MaxTemp, 0),
		MinTemp:     at(d.MinTemp, 0),
		SunriseTime: clockLabel(atString(d.Sunrise, 0)),
		SunsetTime:  clockLabel(atString(d.Sunset, 0)),
		UVIndex:     uvLabel(at(d.UVIndexMax, 0)),
	}

	// Hourly and daily series are in the location's zone, so "today" is too.
	today := p.now().In(time.FixedZone("", payload.UTCOffsetSeconds)).Format(time.DateOnly)
	if day.Format(time.DateOnly) == today {
		cur := payload.Current
		c.Temperature = cur.Temperature
		c.Condition = weather.Condition{Text: wmoConditionText(cur.WeatherCode)}
		c.WindSpeed = cur.WindSpeed
		c.WindDirection = compassDirection(cur.WindDirection)
		c.Humidity = cur.Humidity
		return c
	}

	if len(hourly) > 12 {
		noon := hourly[12]
		c.Temperature = noon.Temperature
		c.Condition = noon.Condition
		c.WindSpeed = noon.WindSpeed
		c.WindDirection = noon.WindDirection
		c.Humidity = noon.Humidity
	} else if len(d.WeatherCode) > 0 {
		c.Condition = weather.Condition{Text: wmoConditionText(d.WeatherCode[0])}
	}
	return c
}

// clockLabel turns "2024-07-14T05:35" into "05:35 AM".
func clockLabel(ts string) string {
	t, err := time.Parse("2006-01-02T15:04", ts)
	if err != nil {
		return ""
	}
	return t.Format("03:04 PM")
}

func at(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

func atInt(values []int, i int) int {
	if i < 0 || i >= len(values) {
		return -1
	}
	return values[i]
}

func atString(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}
