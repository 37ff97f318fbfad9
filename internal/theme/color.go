package theme

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHSL is returned for values that are not "H S% L%" triples.
var ErrInvalidHSL = errors.New("invalid hsl value")

// ParseHSL parses a "220 30% 97%" triple.
func ParseHSL(value string) (colorful.Color, error) {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHSL, value)
	}
	h, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || h < 0 || h > 360 {
		return colorful.Color{}, fmt.Errorf("%w: hue %q", ErrInvalidHSL, fields[0])
	}
	s, err := parsePercent(fields[1])
	if err != nil {
		return colorful.Color{}, err
	}
	l, err := parsePercent(fields[2])
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Hsl(h, s, l), nil
}

func parsePercent(field string) (float64, error) {
	if !strings.HasSuffix(field, "%") {
		return 0, fmt.Errorf("%w: %q is not a percentage", ErrInvalidHSL, field)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHSL, field)
	}
	return v / 100, nil
}

// ThemeColor is the background as a hex color, for <meta name="theme-color">.
func (s Style) ThemeColor() string {
	c, err := ParseHSL(s.Theme.Background)
	if err != nil {
		return ""
	}
	return c.Clamped().Hex()
}

// ContrastRatio computes the WCAG contrast ratio between two HSL values.
func ContrastRatio(a, b string) (float64, error) {
	ca, err := ParseHSL(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHSL(b)
	if err != nil {
		return 0, err
	}
	la := relativeLuminance(ca)
	lb := relativeLuminance(cb)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05), nil
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
