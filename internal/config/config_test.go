package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/imtricks/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3*time.Second, cfg.Toast.Duration.Duration())
	assert.Equal(t, string(PositionBottomRight), cfg.Toast.Position)
	assert.Equal(t, 250, cfg.Toast.Width)
	assert.Equal(t, 50, cfg.Toast.Height)
	assert.Equal(t, 10, cfg.Toast.Margin)
	assert.Equal(t, 5, cfg.Toast.Gap)
	assert.Equal(t, 5, cfg.Toast.AccentWidth)
	assert.True(t, cfg.Toast.Reclaim)
	assert.Equal(t, "frame", cfg.Animation.Rate)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.InDelta(t, 1.0, cfg.Theme.Opacity, 1e-9)
	assert.False(t, cfg.Audio.Enabled)
	assert.False(t, cfg.Desktop.Mirror)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[toast]
duration = "1500ms"
position = "top-left"
width = 300
reclaim = false

[animation]
rate = "time"

[theme]
name = "catppuccin"
opacity = 0.8

[audio]
enabled = true
volume = 40

[audio.sounds]
danger = "/tmp/danger.wav"

[desktop]
mirror = true
min_severity = "warning"

[window]
title = "demo"
tps = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.Toast.Duration.Duration())
	assert.Equal(t, "top-left", cfg.Toast.Position)
	assert.Equal(t, 300, cfg.Toast.Width)
	assert.False(t, cfg.Toast.Reclaim)
	assert.Equal(t, "time", cfg.Animation.Rate)
	assert.Equal(t, "catppuccin", cfg.Theme.Name)
	assert.InDelta(t, 0.8, cfg.Theme.Opacity, 1e-9)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, "/tmp/danger.wav", cfg.Audio.Sounds.Danger)
	assert.True(t, cfg.Desktop.Mirror)
	assert.Equal(t, "warning", cfg.Desktop.MinSeverity)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 30, cfg.Window.TPS)

	// Unset fields keep their defaults
	assert.Equal(t, 50, cfg.Toast.Height)
	assert.Equal(t, DefaultWindowWidth, cfg.Window.Width)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
toast:
  duration: "2s"
  position: top-center
  gap: 8
theme:
  name: light
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Toast.Duration.Duration())
	assert.Equal(t, "top-center", cfg.Toast.Position)
	assert.Equal(t, 8, cfg.Toast.Gap)
	assert.Equal(t, "light", cfg.Theme.Name)
	assert.Equal(t, 250, cfg.Toast.Width)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("invalid [ toml"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[toast]\nposition = \"middle\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/imtricks/config.toml", ConfigPath())
	assert.Equal(t, "/custom/config/imtricks", ConfigDir())
}

func TestConfig_SaveAndReload(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := DefaultConfig()
			cfg.Toast.Duration = Duration(750 * time.Millisecond)
			cfg.Toast.Position = string(PositionTopRight)
			cfg.Theme.Name = "light"
			require.NoError(t, cfg.Save(path))

			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad position", func(c *Config) { c.Toast.Position = "left" }, "invalid position"},
		{"negative duration", func(c *Config) { c.Toast.Duration = Duration(-time.Second) }, "must not be negative"},
		{"zero width", func(c *Config) { c.Toast.Width = 0 }, "must be positive"},
		{"negative gap", func(c *Config) { c.Toast.Gap = -1 }, "must not be negative"},
		{"accent wider than banner", func(c *Config) { c.Toast.AccentWidth = 400 }, "accent_width"},
		{"bad rate", func(c *Config) { c.Animation.Rate = "fast" }, "animation rate"},
		{"opacity too high", func(c *Config) { c.Theme.Opacity = 1.5 }, "opacity"},
		{"volume too high", func(c *Config) { c.Audio.Volume = 101 }, "volume"},
		{"bad min severity", func(c *Config) { c.Desktop.MinSeverity = "catastrophic" }, "min_severity"},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }, "tps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToastConfig_IsBottom(t *testing.T) {
	for _, p := range ValidPositions() {
		cfg := ToastConfig{Position: string(p)}
		want := p == PositionBottomLeft || p == PositionBottomRight || p == PositionBottomCenter
		assert.Equal(t, want, cfg.IsBottom(), p)
	}
}

func TestGetSoundForSeverity(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Audio.Sounds = SoundConfig{
		Success: "/sounds/ok.wav",
		Warning: "~/sounds/warn.wav",
		Danger:  "/sounds/bad.wav",
	}

	assert.Equal(t, "/sounds/ok.wav", cfg.GetSoundForSeverity(model.SeveritySuccess))
	assert.Equal(t, filepath.Join(home, "sounds/warn.wav"), cfg.GetSoundForSeverity(model.SeverityWarning))
	assert.Equal(t, "/sounds/bad.wav", cfg.GetSoundForSeverity(model.SeverityDanger))
	assert.Empty(t, cfg.GetSoundForSeverity(model.SeverityDefault))
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"3s", 3 * time.Second, false},
		{"1500ms", 1500 * time.Millisecond, false},
		{"250", 250 * time.Millisecond, false},
		{"1m", time.Minute, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}
