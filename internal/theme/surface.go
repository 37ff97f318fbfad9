package theme

import (
	"strings"
	"sync"
	"unicode"
)

// VariableSink is the display surface a theme is applied to.
type VariableSink interface {
	SetVariable(name, value string)
	SetMode(mode Mode)
}

// capabilitySink is implemented by sinks that only accept some variables.
type capabilitySink interface {
	Supports(name string) bool
}

// Apply writes every role of style into sink as a CSS custom property and sets
// the sink's mode. Variables the sink does not support are skipped and a nil
// sink is ignored. The last Apply on a sink wins; partial themes are never merged.
func Apply(style Style, sink VariableSink) {
	if sink == nil {
		return
	}
	caps, restricted := sink.(capabilitySink)
	for _, e := range style.Theme.Entries() {
		name := CSSVarName(e.Role)
		if restricted && !caps.Supports(name) {
			continue
		}
		sink.SetVariable(name, e.Value)
	}
	sink.SetMode(style.Mode)
}

// CSSVarName converts a camelCase role ("cardForeground") to its custom
// property name ("--card-foreground").
func CSSVarName(role string) string {
	var b strings.Builder
	b.Grow(len(role) + 4)
	b.WriteString("--")
	for _, r := range role {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RoleFromCSSVar is the inverse of CSSVarName.
func RoleFromCSSVar(name string) string {
	name = strings.TrimPrefix(name, "--")
	var b strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Surface is an in-memory display surface holding the single active theme.
type Surface struct {
	mu        sync.RWMutex
	vars      map[string]string
	mode      Mode
	supported map[string]struct{}
}

// NewSurface creates a Surface. When supported names are given, only those
// variables are accepted.
func NewSurface(supported ...string) *Surface {
	s := &Surface{vars: make(map[string]string)}
	if len(supported) > 0 {
		s.supported = make(map[string]struct{}, len(supported))
		for _, name := range supported {
			s.supported[name] = struct{}{}
		}
	}
	return s
}

func (s *Surface) SetVariable(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
}

func (s *Surface) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Supports reports whether name is in the surface's capability set.
func (s *Surface) Supports(name string) bool {
	if s.supported == nil {
		return true
	}
	_, ok := s.supported[name]
	return ok
}

// Variable returns the current value of a custom property.
func (s *Surface) Variable(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Variables returns a copy of all custom properties.
func (s *Surface) Variables() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

func (s *Surface) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// CSS renders the variables as a :root rule in role order.
func (s *Surface) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root{")
	for _, e := range defaultDark.Entries() {
		name := CSSVarName(e.Role)
		if v, ok := s.vars[name]; ok {
			b.WriteString(name)
			b.WriteByte(':')
			b.WriteString(v)
			b.WriteByte(';')
		}
	}
	b.WriteString("}")
	return b.String()
}
