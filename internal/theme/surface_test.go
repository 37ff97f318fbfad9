package theme

import (
	"strings"
	"testing"
)

func TestCSSVarName(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"background", "--background"},
		{"cardForeground", "--card-foreground"},
		{"destructiveForeground", "--destructive-foreground"},
	}

	for _, test := range tests {
		t.Run(test.role, func(t *testing.T) {
			got := CSSVarName(test.role)
			if got != test.want {
				t.Fatalf("CSSVarName(%q) = %q, want %q", test.role, got, test.want)
			}
			if back := RoleFromCSSVar(got); back != test.role {
				t.Fatalf("RoleFromCSSVar(%q) = %q, want %q", got, back, test.role)
			}
		})
	}
}

func TestApplyReadBack(t *testing.T) {
	for _, style := range Styles() {
		t.Run(string(style.Key), func(t *testing.T) {
			surface := NewSurface()
			Apply(style, surface)

			if surface.Mode() != style.Mode {
				t.Fatalf("mode = %s, want %s", surface.Mode(), style.Mode)
			}
			entries := style.Theme.Entries()
			if got := len(surface.Variables()); got != len(entries) {
				t.Fatalf("surface holds %d variables, want %d", got, len(entries))
			}
			for _, e := range entries {
				got, ok := surface.Variable(CSSVarName(e.Role))
				if !ok || got != e.Value {
					t.Fatalf("variable %s = %q (%t), want %q", e.Role, got, ok, e.Value)
				}
			}
		})
	}
}

func TestApplyLastCallWins(t *testing.T) {
	surface := NewSurface()
	sunny, _ := Lookup(Sunny)
	stormy, _ := Lookup(Stormy)

	Apply(sunny, surface)
	Apply(stormy, surface)

	if surface.Mode() != ModeDark {
		t.Fatalf("mode = %s, want dark", surface.Mode())
	}
	if got, _ := surface.Variable("--background"); got != stormy.Theme.Background {
		t.Fatalf("background = %q, want %q", got, stormy.Theme.Background)
	}
	if got, _ := surface.Variable("--destructive"); got != stormy.Theme.Destructive {
		t.Fatalf("destructive = %q, want %q", got, stormy.Theme.Destructive)
	}
}

func TestApplySkipsUnsupportedVariables(t *testing.T) {
	surface := NewSurface("--background", "--foreground")
	Apply(DefaultStyle(), surface)

	vars := surface.Variables()
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables, got %v", vars)
	}
	if surface.Mode() != ModeDark {
		t.Fatalf("mode = %s, want dark", surface.Mode())
	}
}

func TestApplyNilSink(t *testing.T) {
	Apply(DefaultStyle(), nil)
}

func TestSurfaceCSS(t *testing.T) {
	surface := NewSurface()
	Apply(DefaultStyle(), surface)

	css := surface.CSS()
	if !strings.HasPrefix(css, ":root{--background:220 30% 10%;--foreground:") {
		t.Fatalf("unexpected css prefix: %s", css)
	}
	if !strings.HasSuffix(css, "--ring:225 70% 55%;}") {
		t.Fatalf("unexpected css suffix: %s", css)
	}
}
