package theme

import (
	"errors"
	"fmt"
	"image/color"
	"maps"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/imtricks/internal/colors"
	"github.com/jmylchreest/imtricks/internal/model"
)

// Theme errors.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrCircularTheme    = errors.New("circular theme inheritance")
	ErrUnknownAccentKey = errors.New("unknown accent severity")
)

// builtinAccents is the palette every theme starts from.
var builtinAccents = map[model.Severity]color.NRGBA{
	model.SeveritySuccess: {R: 60, G: 200, B: 100, A: 255},
	model.SeverityWarning: {R: 180, G: 220, B: 50, A: 255},
	model.SeverityDanger:  {R: 224, G: 70, B: 70, A: 255},
	model.SeverityDefault: {R: 128, G: 128, B: 128, A: 255},
}

// Theme is a resolved palette. It satisfies toast.Style.
type Theme struct {
	Name      string // Theme name (without .toml extension)
	Path      string // Full path to the file (empty when embedded)
	IsDefault bool   // True if this is the embedded default theme

	background color.NRGBA
	foreground color.NRGBA
	accents    map[model.Severity]color.NRGBA
	opacity    float64
}

// themeFile is the on-disk form of a theme.
type themeFile struct {
	Inherits   string            `toml:"inherits"`
	Background string            `toml:"background"`
	Foreground string            `toml:"foreground"`
	Accents    map[string]string `toml:"accents"`
}

// lookupFunc finds the raw file for a theme name and reports its path.
type lookupFunc func(name string) (data []byte, path string, found bool)

// NewBuiltinTheme returns the hard-coded fallback palette.
func NewBuiltinTheme() *Theme {
	return &Theme{
		Name:       "builtin",
		background: color.NRGBA{R: 30, G: 31, B: 34, A: 255},
		foreground: color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		accents:    maps.Clone(builtinAccents),
		opacity:    1,
	}
}

// Parse builds a theme from TOML data. Inherited themes are resolved
// through lookup; the seen set guards against inheritance cycles.
func Parse(name string, data []byte, lookup lookupFunc) (*Theme, error) {
	return parse(name, data, lookup, map[string]bool{name: true})
}

func parse(name string, data []byte, lookup lookupFunc, seen map[string]bool) (*Theme, error) {
	var f themeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}

	t := NewBuiltinTheme()
	if f.Inherits != "" {
		if seen[f.Inherits] {
			return nil, fmt.Errorf("%w: %s inherits %s", ErrCircularTheme, name, f.Inherits)
		}
		seen[f.Inherits] = true

		if lookup == nil {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, f.Inherits)
		}
		baseData, _, found := lookup(f.Inherits)
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, f.Inherits)
		}
		base, err := parse(f.Inherits, baseData, lookup, seen)
		if err != nil {
			return nil, err
		}
		t = base
	}
	t.Name = name
	t.Path = ""
	t.IsDefault = name == DefaultThemeName

	if f.Background != "" {
		c, err := colors.Hex(f.Background)
		if err != nil {
			return nil, fmt.Errorf("theme %q background: %w", name, err)
		}
		t.background = c
	}
	if f.Foreground != "" {
		c, err := colors.Hex(f.Foreground)
		if err != nil {
			return nil, fmt.Errorf("theme %q foreground: %w", name, err)
		}
		t.foreground = c
	}
	for key, value := range f.Accents {
		sev, err := model.ParseSeverity(key)
		if err != nil || key == "" {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownAccentKey, key, name)
		}
		c, err := colors.Hex(value)
		if err != nil {
			return nil, fmt.Errorf("theme %q accent %s: %w", name, key, err)
		}
		t.accents[sev] = c
	}

	return t, nil
}

// Background returns the banner fill color with the theme opacity applied.
func (t *Theme) Background() color.NRGBA {
	return colors.WithAlpha(t.background, t.opacity)
}

// Foreground returns the text color.
func (t *Theme) Foreground() color.NRGBA {
	return t.foreground
}

// Accent returns the accent bar color for a severity.
// Unknown severities use the default accent.
func (t *Theme) Accent(s model.Severity) color.NRGBA {
	if c, ok := t.accents[s]; ok {
		return c
	}
	return t.accents[model.SeverityDefault]
}

// Opacity returns the background opacity in [0,1].
func (t *Theme) Opacity() float64 {
	return t.opacity
}

// WithOpacity returns a copy of the theme whose background uses opacity.
func (t *Theme) WithOpacity(opacity float64) *Theme {
	clone := *t
	clone.accents = maps.Clone(t.accents)
	clone.opacity = min(max(opacity, 0), 1)
	return &clone
}
