package theme

import (
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
)

type rule struct {
	style Name
	match func(lower string) bool
}

// rules are evaluated in order and the first match wins. Severe conditions come
// before the generic sun/cloud keywords they may appear next to, and the
// partly-cloudy check precedes the broader sun and cloud checks. "partly" only
// counts next to a sun or cloud keyword, so "Partly clear" stays sunny.
var rules = []rule{
	{Stormy, func(s string) bool { return common.HasAny(s, "thunder", "storm") }},
	{Snowy, func(s string) bool { return common.HasAny(s, "snow", "sleet", "blizzard") }},
	{Rainy, func(s string) bool { return common.HasAny(s, "rain", "drizzle", "shower") }},
	{Foggy, func(s string) bool { return common.HasAny(s, "fog", "mist", "haze") }},
	{PartlyCloudy, func(s string) bool {
		if strings.Contains(s, "sun") {
			return common.HasAny(s, "cloud", "partly")
		}
		return strings.Contains(s, "partly") && strings.Contains(s, "cloud")
	}},
	{Sunny, func(s string) bool { return common.HasAny(s, "sun", "clear") }},
	{Cloudy, func(s string) bool { return common.HasAny(s, "cloud", "overcast") }},
}

// Resolve maps a free-text condition description to a registered style.
// It never fails: empty or unmatched text resolves to the default style.
func Resolve(conditionText string) Style {
	if conditionText == "" {
		return DefaultStyle()
	}
	lower := strings.ToLower(conditionText)
	for _, r := range rules {
		if r.match(lower) {
			return registry[r.style]
		}
	}
	return DefaultStyle()
}
