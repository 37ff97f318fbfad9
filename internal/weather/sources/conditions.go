package sources

import (
	"fmt"
	"math"
)

// wmoConditionText maps WMO weather interpretation codes (as used by
// Open-Meteo) to the free-text descriptions the dashboard themes on.
func wmoConditionText(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code == 1:
		return "Mainly Sunny"
	case code == 2:
		return "Partly Cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code == 56 || code == 57:
		return "Freezing Drizzle"
	case code == 61:
		return "Light Rain"
	case code == 63:
		return "Rain"
	case code == 65:
		return "Heavy Rain"
	case code == 66 || code == 67:
		return "Freezing Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain Showers"
	case code == 85 || code == 86:
		return "Snow Showers"
	case code == 95:
		return "Thunderstorm"
	case code == 96 || code == 99:
		return "Thunderstorm with Hail"
	default:
		return "Unknown"
	}
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compassDirection converts a bearing in degrees to an 8-point compass label.
func compassDirection(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}

// uvLabel formats a UV index on the 0-11 scale ("5 of 11").
func uvLabel(uv float64) string {
	return fmt.Sprintf("%d of 11", int(math.Round(uv)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
