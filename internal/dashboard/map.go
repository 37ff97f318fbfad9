package dashboard

import (
	"net/url"
	"strconv"
)

const windyEmbedURL = "https://embed.windy.com/embed2.html"

// MapURL builds the windy.com embed for a coordinate. Wind wins when both
// layers are on; with neither the radar layer is shown.
func MapURL(lat, lon float64, wind, clouds bool) string {
	layer := "wind"
	switch {
	case wind:
	case clouds:
		layer = "clouds"
	default:
		layer = "radar"
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "7")
	q.Set("menu", "")
	q.Set("message", "true")
	q.Set("marker", "true")
	q.Set("calendar", "now")
	q.Set("pressure", "")
	q.Set("type", "map")
	q.Set("location", "coordinates")
	q.Set("detail", "")
	q.Set("metricWind", "km/h")
	q.Set("metricTemp", "°C")
	q.Set("radarRange", "-1")
	q.Set("layer", layer)
	return windyEmbedURL + "?" + q.Encode()
}
