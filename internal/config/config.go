// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/imtricks/internal/model"
)

// Default configuration values.
const (
	DefaultToastDuration = 3000 * time.Millisecond
	DefaultToastWidth    = 250
	DefaultToastHeight   = 50
	DefaultToastMargin   = 10
	DefaultToastGap      = 5
	DefaultAccentWidth   = 5
	DefaultToastPadding  = 10
	DefaultCornerRadius  = 4
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 720
	DefaultWindowTPS     = 60
)

// Config represents the imtricks configuration.
type Config struct {
	Toast     ToastConfig     `toml:"toast" yaml:"toast"`
	Animation AnimationConfig `toml:"animation" yaml:"animation"`
	Theme     ThemeConfig     `toml:"theme" yaml:"theme"`
	Audio     AudioConfig     `toml:"audio" yaml:"audio"`
	Desktop   DesktopConfig   `toml:"desktop" yaml:"desktop"`
	Window    WindowConfig    `toml:"window" yaml:"window"`
}

// ToastConfig contains toast queue and banner layout settings.
// Sizes are in host units: pixels for the window host, cells for the terminal host.
type ToastConfig struct {
	Duration     Duration `toml:"duration" yaml:"duration"`           // Lifetime applied at enqueue time
	Position     string   `toml:"position" yaml:"position"`           // "bottom-right", "top-left", etc.
	Width        int      `toml:"width" yaml:"width"`                 // Banner width
	Height       int      `toml:"height" yaml:"height"`               // Banner height
	Margin       int      `toml:"margin" yaml:"margin"`               // Distance from the screen corner
	Gap          int      `toml:"gap" yaml:"gap"`                     // Gap between stacked banners
	AccentWidth  int      `toml:"accent_width" yaml:"accent_width"`   // Severity bar on the left edge
	Padding      int      `toml:"padding" yaml:"padding"`             // Text offset past the accent bar
	CornerRadius float64  `toml:"corner_radius" yaml:"corner_radius"` // Background corner radius
	Reclaim      bool     `toml:"reclaim" yaml:"reclaim"`             // Drop expired toasts after each frame
}

// AnimationConfig contains animation store settings.
type AnimationConfig struct {
	Rate string `toml:"rate" yaml:"rate"` // "frame" or "time"
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name    string  `toml:"name" yaml:"name"`       // Theme name without .toml extension
	Opacity float64 `toml:"opacity" yaml:"opacity"` // 0.0-1.0, banner background opacity
}

// AudioConfig contains audio cue settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled" yaml:"enabled"`
	Volume  int         `toml:"volume" yaml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds" yaml:"sounds"`
}

// SoundConfig contains per-severity sound file paths.
type SoundConfig struct {
	Success string `toml:"success" yaml:"success"`
	Warning string `toml:"warning" yaml:"warning"`
	Danger  string `toml:"danger" yaml:"danger"`
	Default string `toml:"default" yaml:"default"`
}

// DesktopConfig controls mirroring toasts to the desktop notification daemon.
type DesktopConfig struct {
	Mirror      bool   `toml:"mirror" yaml:"mirror"`
	MinSeverity string `toml:"min_severity" yaml:"min_severity"` // Lowest severity that is mirrored
}

// WindowConfig contains settings for the window host.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	TPS    int    `toml:"tps" yaml:"tps"` // Frames per second
}

// Position represents the screen corner toasts stack from.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionTopCenter,
		PositionBottomLeft,
		PositionBottomRight,
		PositionBottomCenter,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			Duration:     Duration(DefaultToastDuration),
			Position:     string(PositionBottomRight),
			Width:        DefaultToastWidth,
			Height:       DefaultToastHeight,
			Margin:       DefaultToastMargin,
			Gap:          DefaultToastGap,
			AccentWidth:  DefaultAccentWidth,
			Padding:      DefaultToastPadding,
			CornerRadius: DefaultCornerRadius,
			Reclaim:      true,
		},
		Animation: AnimationConfig{
			Rate: "frame",
		},
		Theme: ThemeConfig{
			Name:    "default",
			Opacity: 1.0,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Desktop: DesktopConfig{
			Mirror:      false,
			MinSeverity: model.SeverityDanger.String(),
		},
		Window: WindowConfig{
			Title:  "imtricks",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			TPS:    DefaultWindowTPS,
		},
	}
}

// ConfigDir returns the imtricks config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "imtricks")
}

// ConfigPath returns the path to the default config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// isYAML reports whether path should be parsed as YAML rather than TOML.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as TOML, or YAML when asYAML is set.
func (c *Config) Marshal(asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and writes atomically via a temp file.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(isYAML(path))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidPositions(), Position(c.Toast.Position)) {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Toast.Position, ValidPositions())
	}

	if c.Toast.Duration < 0 {
		return fmt.Errorf("toast duration must not be negative, got %s", c.Toast.Duration.Duration())
	}
	if c.Toast.Width <= 0 || c.Toast.Height <= 0 {
		return fmt.Errorf("toast width and height must be positive, got %dx%d", c.Toast.Width, c.Toast.Height)
	}
	if c.Toast.Margin < 0 || c.Toast.Gap < 0 || c.Toast.Padding < 0 || c.Toast.CornerRadius < 0 {
		return errors.New("toast margin, gap, padding and corner_radius must not be negative")
	}
	if c.Toast.AccentWidth < 0 || c.Toast.AccentWidth > c.Toast.Width {
		return fmt.Errorf("accent_width must be between 0 and width (%d), got %d", c.Toast.Width, c.Toast.AccentWidth)
	}

	if c.Animation.Rate != "frame" && c.Animation.Rate != "time" {
		return fmt.Errorf("invalid animation rate %q, must be \"frame\" or \"time\"", c.Animation.Rate)
	}

	if c.Theme.Opacity < 0 || c.Theme.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1, got %v", c.Theme.Opacity)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if _, err := model.ParseSeverity(c.Desktop.MinSeverity); err != nil {
		return fmt.Errorf("desktop min_severity: %w", err)
	}

	if c.Window.TPS < 1 || c.Window.TPS > 240 {
		return fmt.Errorf("tps must be between 1 and 240, got %d", c.Window.TPS)
	}

	return nil
}

// IsBottom returns true if toasts stack up from the bottom of the screen.
func (c ToastConfig) IsBottom() bool {
	switch Position(c.Position) {
	case PositionBottomLeft, PositionBottomRight, PositionBottomCenter:
		return true
	default:
		return false
	}
}

// GetSoundForSeverity returns the sound file path for the given severity.
// Expands ~ to home directory.
func (c *Config) GetSoundForSeverity(s model.Severity) string {
	var path string
	switch s {
	case model.SeveritySuccess:
		path = c.Audio.Sounds.Success
	case model.SeverityWarning:
		path = c.Audio.Sounds.Warning
	case model.SeverityDanger:
		path = c.Audio.Sounds.Danger
	default:
		path = c.Audio.Sounds.Default
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
