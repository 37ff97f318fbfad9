package theme

import (
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// Icon names follow the lucide icon set used by the dashboard frontend.
const (
	IconCloud        = "cloud"
	IconCloudSun     = "cloud-sun"
	IconSun          = "sun"
	IconCloudFog     = "cloud-fog"
	IconZap          = "zap"
	IconCloudRain    = "cloud-rain"
	IconCloudDrizzle = "cloud-drizzle"
	IconSnowflake    = "snowflake"
	IconWind         = "wind"
	IconCloudy       = "cloudy"
)

// Icon picks an icon for a condition. Its ordering differs from Resolve: icons
// favour the sky cover first and refine rain by intensity.
func Icon(conditionText string) string {
	if conditionText == "" {
		return IconCloud
	}
	s := strings.ToLower(conditionText)

	switch {
	case strings.Contains(s, "sun") && common.HasAny(s, "cloud", "partly"):
		return IconCloudSun
	case common.HasAny(s, "sun", "clear"):
		return IconSun
	case common.HasAny(s, "fog", "mist", "haze"):
		return IconCloudFog
	case strings.Contains(s, "rain"):
		switch {
		case common.HasAny(s, "thunder", "storm"):
			return IconZap
		case strings.Contains(s, "heavy"):
			return IconCloudRain
		default:
			return IconCloudDrizzle
		}
	case common.HasAny(s, "thunder", "storm"):
		return IconZap
	case common.HasAny(s, "snow", "sleet"):
		return IconSnowflake
	case strings.Contains(s, "wind"):
		return IconWind
	case strings.Contains(s, "overcast"):
		return IconCloudy
	default:
		return IconCloud
	}
}
