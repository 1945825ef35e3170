package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Loader resolves theme names to palettes.
type Loader struct {
	logger    *slog.Logger
	themesDir string
}

// NewLoader creates a new theme loader reading user themes from themesDir.
// An empty themesDir disables user themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "imtricks", "themes"), nil
}

// Dir returns the user themes directory this loader reads from.
func (l *Loader) Dir() string {
	return l.themesDir
}

// Load loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/imtricks/themes/)
//  2. Embedded/bundled themes
//
// A user file with the same name as a bundled theme overrides it. If the
// name cannot be resolved or fails to parse, the default theme is returned
// and the problem is logged.
func (l *Loader) Load(name string) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	if data, path, found := l.lookup(name); found {
		t, err := Parse(name, data, l.lookup)
		if err == nil {
			t.Path = path
			l.logger.Debug("loaded theme", "name", name, "path", path)
			return t
		}
		l.logger.Warn("failed to load theme, using default", "theme", name, "error", err)
	} else {
		l.logger.Warn("theme not found, using default", "theme", name)
	}

	data, _ := GetEmbeddedTheme(DefaultThemeName)
	t, err := Parse(DefaultThemeName, data, nil)
	if err != nil {
		// The embedded default is covered by tests; this only guards edits to it.
		l.logger.Error("embedded default theme is invalid", "error", err)
		return NewBuiltinTheme()
	}
	return t
}

// lookup finds a theme file in the user directory, then the embedded set.
func (l *Loader) lookup(name string) ([]byte, string, bool) {
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".toml")
		if data, err := os.ReadFile(path); err == nil {
			return data, path, true
		}
	}
	if data, found := GetEmbeddedTheme(name); found {
		return data, "", true
	}
	return nil, "", false
}

// List returns the available theme names, bundled and user, sorted and
// with duplicates removed.
func (l *Loader) List() []string {
	themes := ListEmbeddedThemes()

	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err != nil {
			if !os.IsNotExist(err) {
				l.logger.Debug("failed to read themes directory", "error", err)
			}
		} else {
			for _, entry := range entries {
				if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
					continue
				}
				themes = append(themes, strings.TrimSuffix(entry.Name(), ".toml"))
			}
		}
	}

	slices.Sort(themes)
	return slices.Compact(themes)
}
