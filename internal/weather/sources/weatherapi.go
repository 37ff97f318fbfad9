package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

// weatherAPIMaxDays is the longest outlook forecast.json serves.
const weatherAPIMaxDays = 14

// WeatherAPI implements weather.Source for WeatherAPI.com. Condition text is
// passed through verbatim. Only today and future dates are supported.
type WeatherAPI struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewWeatherAPI(cfg HTTPClientConfig, apiKey string) *WeatherAPI {
	return &WeatherAPI{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: cfg,
		circuit: newCircuitBreaker("weatherapi"),
		now:     time.Now,
	}
}

func (p *WeatherAPI) Name() string {
	return p.name
}

type weatherAPICondition struct {
	Text string `json:"text"`
}

type weatherAPIPayload struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC     float64             `json:"temp_c"`
		Condition weatherAPICondition `json:"condition"`
		WindKph   float64             `json:"wind_kph"`
		WindDir   string              `json:"wind_dir"`
		Humidity  float64             `json:"humidity"`
		UV        float64             `json:"uv"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC  float64             `json:"maxtemp_c"`
				MinTempC  float64             `json:"mintemp_c"`
				AvgHumid  float64             `json:"avghumidity"`
				MaxWind   float64             `json:"maxwind_kph"`
				UV        float64             `json:"uv"`
				Condition weatherAPICondition `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				Time         string              `json:"time"`
				TempC        float64             `json:"temp_c"`
				Condition    weatherAPICondition `json:"condition"`
				WindKph      float64             `json:"wind_kph"`
				WindDir      string              `json:"wind_dir"`
				Humidity     float64             `json:"humidity"`
				ChanceOfRain float64             `json:"chance_of_rain"`
				UV           float64             `json:"uv"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPI) Forecast(ctx context.Context, req weather.Request) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("weatherapi api key is not configured")
	}

	offset := daysBetween(p.now().In(req.Date.Location()), req.Date)
	if offset < 0 {
		return weather.Forecast{}, fmt.Errorf("%w: %s is in the past", ErrDateUnsupported, req.Date.Format(time.DateOnly))
	}
	if offset >= weatherAPIMaxDays {
		return weather.Forecast{}, fmt.Errorf("%w: %s is beyond %d days", ErrDateUnsupported, req.Date.Format(time.DateOnly), weatherAPIMaxDays)
	}
	days := min(offset+weather.DailyCount, weatherAPIMaxDays)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI accepts "city,country", ZIP codes or "lat,lon" in q.
		values.Set("q", req.Location)
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload weatherAPIPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, err
	}

	return p.toForecast(payload, req.Date, offset == 0), nil
}

func (p *WeatherAPI) toForecast(payload weatherAPIPayload, day time.Time, isToday bool) weather.Forecast {
	lat, lon := payload.Location.Lat, payload.Location.Lon
	f := weather.Forecast{
		LocationName: joinNonEmpty(payload.Location.Name, payload.Location.Country),
		DisplayDate:  weather.DisplayDate(day),
		Latitude:     &lat,
		Longitude:    &lon,
		Source:       p.name,
		FetchedAt:    p.now().UTC(),
	}

	want := day.Format(time.DateOnly)
	for _, fd := range payload.Forecast.ForecastDay {
		if fd.Date < want || len(f.Daily) == weather.DailyCount {
			continue
		}
		t, err := time.Parse(time.DateOnly, fd.Date)
		if err != nil {
			continue
		}
		f.Daily = append(f.Daily, weather.DailyItem{
			Date:      fd.Date,
			DayName:   t.Weekday().String(),
			Condition: weather.Condition{Text: fd.Day.Condition.Text},
			MaxTemp:   fd.Day.MaxTempC,
			MinTemp:   fd.Day.MinTempC,
		})

		if fd.Date != want {
			continue
		}

		for _, h := range fd.Hour {
			ht, err := time.Parse("2006-01-02 15:04", h.Time)
			if err != nil {
				continue
			}
			f.Hourly = append(f.Hourly, weather.HourlyItem{
				Time:          weather.HourLabel(ht),
				Temperature:   h.TempC,
				Condition:     weather.Condition{Text: h.Condition.Text},
				UVIndex:       uvLabel(h.UV),
				WindSpeed:     h.WindKph,
				WindDirection: h.WindDir,
				RainChance:    h.ChanceOfRain,
				Humidity:      h.Humidity,
			})
		}

		f.Current = weather.Current{
			Temperature: round1((fd.Day.MaxTempC + fd.Day.MinTempC) / 2),
			Condition:   weather.Condition{Text: fd.Day.Condition.Text},
			MaxTemp:     fd.Day.MaxTempC,
			MinTemp:     fd.Day.MinTempC,
			WindSpeed:   fd.Day.MaxWind,
			SunriseTime: fd.Astro.Sunrise,
			SunsetTime:  fd.Astro.Sunset,
			Humidity:    fd.Day.AvgHumid,
			UVIndex:     uvLabel(fd.Day.UV),
		}
		if isToday {
			c := payload.Current
			f.Current.Temperature = c.TempC
			f.Current.Condition = weather.Condition{Text: c.Condition.Text}
			f.Current.WindSpeed = c.WindKph
			f.Current.WindDirection = c.WindDir
			f.Current.Humidity = c.Humidity
		} else if len(f.Hourly) > 12 {
			f.Current.WindDirection = f.Hourly[12].WindDirection
		}
	}

	return f
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
