package weather

import (
	"strings"
	"time"
)

// Condition is a free-text description of the weather, e.g. "Light Rain".
type Condition struct {
	Text string `json:"text"`
}

// Current is the summary for the selected date: live conditions for today,
// a midday snapshot otherwise.
type Current struct {
	Temperature   float64   `json:"temperature"` // Celsius
	Condition     Condition `json:"condition"`
	MaxTemp       float64   `json:"maxTemp"`
	MinTemp       float64   `json:"minTemp"`
	WindSpeed     float64   `json:"windSpeed"` // km/h
	WindDirection string    `json:"windDirection"`
	SunriseTime   string    `json:"sunriseTime"` // "06:00 AM"
	SunsetTime    string    `json:"sunsetTime"`
	Humidity      float64   `json:"humidity"` // 0-100
	UVIndex       string    `json:"uvIndex"`  // "5 of 11"
}

// HourlyItem is one hour of the selected date.
type HourlyItem struct {
	Time          string    `json:"time"` // "03:00 PM"
	Temperature   float64   `json:"temperature"`
	Condition     Condition `json:"condition"`
	UVIndex       string    `json:"uvIndex"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection string    `json:"windDirection"`
	RainChance    float64   `json:"rainChance"`
	Humidity      float64   `json:"humidity"`
}

// DailyItem is one day of the multi-day outlook starting at the selected date.
type DailyItem struct {
	Date      string    `json:"date"`    // "2006-01-02"
	DayName   string    `json:"dayName"` // "Friday"
	Condition Condition `json:"condition"`
	MaxTemp   float64   `json:"maxTemp"`
	MinTemp   float64   `json:"minTemp"`
}

// Forecast is everything the dashboard renders for a location and date.
type Forecast struct {
	LocationName string       `json:"locationName"`
	DisplayDate  string       `json:"displayDate"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	Current      Current      `json:"current"`
	Hourly       []HourlyItem `json:"hourly"`
	Daily        []DailyItem  `json:"daily"`

	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"` // always UTC
}

const (
	// HourlyCount is the number of hourly entries for the selected date.
	HourlyCount = 24
	// DailyCount is the length of the outlook starting at the selected date.
	DailyCount = 7
)

// Request identifies a forecast: a location query (city, ZIP or "lat,lon")
// and the selected calendar date.
type Request struct {
	Location string    `json:"location"`
	Date     time.Time `json:"date"`
}

// Key returns a canonical string key for caching this request.
func (r Request) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Location)) + "|" + r.Date.Format(time.DateOnly)
}

// DisplayDate formats a date the way the dashboard header shows it ("Friday, July 14").
func DisplayDate(t time.Time) string {
	return t.Format("Monday, January 2")
}

// HourLabel formats the hour the way hourly items are labelled ("03:00 PM").
func HourLabel(t time.Time) string {
	return t.Format("03:00 PM")
}
