package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// Place is a geocoded location.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Geocoder turns a free-text location query into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}

// ParseCoordinates parses "lat,lon" queries such as the ones produced by the
// browser's live-location lookup.
func ParseCoordinates(query string) (Place, bool) {
	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return Place{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return Place{}, false
	}
	return Place{Name: "Current Location", Latitude: lat, Longitude: lon}, true
}

// OpenMeteoGeocoder uses the free Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(cfg HTTPClientConfig) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: "https://geocoding-api.open-meteo.com/v1/search",
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	if p, ok := ParseCoordinates(query); ok {
		return p, nil
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", cityPart(query))
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, err
	}
	if len(payload.Results) == 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
	}

	r := payload.Results[0]
	return Place{
		Name:      joinNonEmpty(r.Name, r.Country),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// The geocoder package keeps its key in a package-level variable and is not
// safe for concurrent use. The key is set once and lookups are serialized.
var (
	googleKeyOnce   sync.Once
	googleMu        sync.Mutex
	googleGeocoding = geocoder.Geocoding
)

// GoogleGeocoder resolves queries with the Google Maps geocoding API. Only the
// first non-empty key given to NewGoogleGeocoder is used by the process.
type GoogleGeocoder struct {
	apiKey string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	if apiKey != "" {
		googleKeyOnce.Do(func() {
			geocoder.ApiKey = apiKey
		})
	}
	return &GoogleGeocoder{apiKey: apiKey}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	if p, ok := ParseCoordinates(query); ok {
		return p, nil
	}
	if g.apiKey == "" {
		return Place{}, fmt.Errorf("google geocoder api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}

	// geocoder.Geocoding takes no context; ctx is only checked before the call.
	city, country := splitQuery(query)
	googleMu.Lock()
	loc, err := googleGeocoding(geocoder.Address{City: city, Country: country})
	googleMu.Unlock()
	if err != nil {
		return Place{}, fmt.Errorf("%w: %q: %v", ErrLocationNotFound, query, err)
	}
	return Place{
		Name:      joinNonEmpty(city, country),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}, nil
}

// splitQuery splits "City, Country" into its parts.
func splitQuery(query string) (city, country string) {
	city, country, _ = strings.Cut(query, ",")
	return strings.TrimSpace(city), strings.TrimSpace(country)
}

func cityPart(query string) string {
	city, _ := splitQuery(query)
	return city
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
