package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the light/dark flag applied to the display root.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Name is the canonical registry key of a weather style.
type Name string

const (
	Sunny        Name = "sunny"
	Clear        Name = "clear"
	Rainy        Name = "rainy"
	Cloudy       Name = "cloudy"
	PartlyCloudy Name = "partly_cloudy"
	Snowy        Name = "snowy"
	Stormy       Name = "stormy"
	Foggy        Name = "foggy"
	Default      Name = "default"
)

// ErrEmptyRole is returned when a theme role has no value.
var ErrEmptyRole = errors.New("theme role is empty")

// Variables holds the color roles of a theme as HSL triples ("220 30% 97%").
type Variables struct {
	Background            string `json:"background"`
	Foreground            string `json:"foreground"`
	Card                  string `json:"card"`
	CardForeground        string `json:"cardForeground"`
	Popover               string `json:"popover"`
	PopoverForeground     string `json:"popoverForeground"`
	Primary               string `json:"primary"`
	PrimaryForeground     string `json:"primaryForeground"`
	Secondary             string `json:"secondary"`
	SecondaryForeground   string `json:"secondaryForeground"`
	Muted                 string `json:"muted"`
	MutedForeground       string `json:"mutedForeground"`
	Accent                string `json:"accent"`
	AccentForeground      string `json:"accentForeground"`
	Destructive           string `json:"destructive"`
	DestructiveForeground string `json:"destructiveForeground"`
	Border                string `json:"border"`
	Input                 string `json:"input"`
	Ring                  string `json:"ring"`
}

// Entry is a single named role value.
type Entry struct {
	Role  string
	Value string
}

// Entries lists every role in a fixed order, keyed by its camelCase identifier.
func (v Variables) Entries() []Entry {
	return []Entry{
		{"background", v.Background},
		{"foreground", v.Foreground},
		{"card", v.Card},
		{"cardForeground", v.CardForeground},
		{"popover", v.Popover},
		{"popoverForeground", v.PopoverForeground},
		{"primary", v.Primary},
		{"primaryForeground", v.PrimaryForeground},
		{"secondary", v.Secondary},
		{"secondaryForeground", v.SecondaryForeground},
		{"muted", v.Muted},
		{"mutedForeground", v.MutedForeground},
		{"accent", v.Accent},
		{"accentForeground", v.AccentForeground},
		{"destructive", v.Destructive},
		{"destructiveForeground", v.DestructiveForeground},
		{"border", v.Border},
		{"input", v.Input},
		{"ring", v.Ring},
	}
}

// Validate checks that every role is present and parses as HSL.
func (v Variables) Validate() error {
	for _, e := range v.Entries() {
		if strings.TrimSpace(e.Value) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyRole, e.Role)
		}
		if _, err := ParseHSL(e.Value); err != nil {
			return fmt.Errorf("role %s: %w", e.Role, err)
		}
	}
	return nil
}

// Style is a named weather theme: palette, mode and background image.
type Style struct {
	Key                Name      `json:"key"`
	Name               string    `json:"name"`
	BackgroundImageURL string    `json:"backgroundImageUrl"`
	AccessibilityHint  string    `json:"accessibilityHint"`
	Mode               Mode      `json:"mode"`
	Theme              Variables `json:"theme"`
}

var defaultDark = Variables{
	Background:            "220 30% 10%",
	Foreground:            "220 15% 85%",
	Card:                  "220 25% 16%",
	CardForeground:        "220 15% 85%",
	Popover:               "220 25% 16%",
	PopoverForeground:     "220 15% 85%",
	Primary:               "225 70% 60%",
	PrimaryForeground:     "210 40% 98%",
	Secondary:             "220 20% 22%",
	SecondaryForeground:   "225 70% 60%",
	Muted:                 "220 20% 18%",
	MutedForeground:       "220 10% 50%",
	Accent:                "220 25% 22%",
	AccentForeground:      "225 70% 65%",
	Destructive:           "0 70% 50%",
	DestructiveForeground: "0 0% 98%",
	Border:                "220 20% 28%",
	Input:                 "220 25% 12%",
	Ring:                  "225 70% 55%",
}

var defaultLight = Variables{
	Background:            "0 0% 100%",
	Foreground:            "220 25% 15%",
	Card:                  "0 0% 100%",
	CardForeground:        "220 25% 15%",
	Popover:               "0 0% 100%",
	PopoverForeground:     "220 25% 15%",
	Primary:               "225 70% 55%",
	PrimaryForeground:     "210 40% 98%",
	Secondary:             "220 20% 94%",
	SecondaryForeground:   "225 70% 55%",
	Muted:                 "220 20% 90%",
	MutedForeground:       "220 10% 45%",
	Accent:                "220 20% 96%",
	AccentForeground:      "225 70% 55%",
	Destructive:           "0 84% 60%",
	DestructiveForeground: "0 0% 98%",
	Border:                "220 15% 88%",
	Input:                 "220 20% 96%",
	Ring:                  "225 70% 60%",
}

// registry is populated once in init and never mutated afterwards.
var (
	registry map[Name]Style
	order    = []Name{Sunny, Clear, Rainy, Cloudy, PartlyCloudy, Snowy, Stormy, Foggy, Default}
)

func init() {
	registry = buildRegistry()
	for _, key := range order {
		s, ok := registry[key]
		if !ok {
			panic(fmt.Sprintf("theme: style %q missing from registry", key))
		}
		if err := s.Theme.Validate(); err != nil {
			panic(fmt.Sprintf("theme: style %q: %v", key, err))
		}
	}
}

func buildRegistry() map[Name]Style {
	sunny := defaultLight
	sunny.Background = "45 100% 95%"
	sunny.Primary = "40 100% 50%"
	sunny.Accent = "50 100% 90%"

	clearSky := defaultLight
	clearSky.Background = "200 100% 95%"
	clearSky.Primary = "210 100% 55%"
	clearSky.Accent = "200 100% 90%"

	rainy := defaultDark
	rainy.Background = "220 40% 20%"
	rainy.Primary = "210 70% 50%"
	rainy.Accent = "220 30% 30%"

	cloudy := defaultDark
	cloudy.Background = "220 20% 25%"
	cloudy.Primary = "220 40% 60%"
	cloudy.Accent = "220 20% 35%"

	partly := defaultLight
	partly.Background = "210 60% 92%"
	partly.Primary = "220 70% 60%"
	partly.Accent = "210 50% 85%"

	snowy := defaultLight
	snowy.Background = "200 50% 96%"
	snowy.Primary = "190 80% 60%"
	snowy.Foreground = "200 20% 30%"
	snowy.Accent = "200 40% 90%"

	stormy := defaultDark
	stormy.Background = "240 50% 5%"
	stormy.Primary = "260 70% 65%"
	stormy.Accent = "240 40% 15%"
	stormy.Destructive = "30 100% 50%"

	foggy := defaultLight
	foggy.Background = "210 20% 85%"
	foggy.Foreground = "210 15% 35%"
	foggy.Primary = "210 30% 55%"
	foggy.Accent = "210 20% 75%"

	return map[Name]Style{
		Sunny:        newStyle(Sunny, "Sunny", "sunnyday", "sunny landscape", ModeLight, sunny),
		Clear:        newStyle(Clear, "Clear", "clearsky", "clear sky", ModeLight, clearSky),
		Rainy:        newStyle(Rainy, "Rainy", "rainycity", "rainy city street", ModeDark, rainy),
		Cloudy:       newStyle(Cloudy, "Cloudy", "cloudysky", "overcast sky clouds", ModeDark, cloudy),
		PartlyCloudy: newStyle(PartlyCloudy, "Partly Cloudy", "partlycloudy", "partly cloudy sky", ModeLight, partly),
		Snowy:        newStyle(Snowy, "Snowy", "snowylandscape", "snowy forest winter", ModeLight, snowy),
		Stormy:       newStyle(Stormy, "Stormy", "stormysky", "storm clouds lightning", ModeDark, stormy),
		Foggy:        newStyle(Foggy, "Foggy", "foggymorning", "foggy forest mist", ModeLight, foggy),
		Default:      newStyle(Default, "Default", "defaultweather", "moody sky landscape", ModeDark, defaultDark),
	}
}

func newStyle(key Name, name, imageSeed, hint string, mode Mode, vars Variables) Style {
	return Style{
		Key:                key,
		Name:               name,
		BackgroundImageURL: "https://picsum.photos/seed/" + imageSeed + "/1920/1080",
		AccessibilityHint:  hint,
		Mode:               mode,
		Theme:              vars,
	}
}

// Lookup returns the registered style for key.
func Lookup(key Name) (Style, bool) {
	s, ok := registry[key]
	return s, ok
}

// Styles returns every registered style in a stable order.
func Styles() []Style {
	out := make([]Style, 0, len(order))
	for _, key := range order {
		out = append(out, registry[key])
	}
	return out
}

// DefaultStyle is the fallback style used when nothing else matches.
func DefaultStyle() Style {
	return registry[Default]
}
