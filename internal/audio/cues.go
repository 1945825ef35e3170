package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/model"
)

// Cues maps toast severities to sound files and plays them off the
// render thread.
type Cues struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	enabled bool
	sounds  map[model.Severity]string
	wg      sync.WaitGroup
}

// NewCues creates cues from the audio section of cfg.
func NewCues(cfg *config.Config, logger *slog.Logger) *Cues {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cues{
		logger: logger,
		player: NewPlayer(logger),
		sounds: make(map[model.Severity]string),
	}
	c.UpdateConfig(cfg)
	return c
}

// UpdateConfig reloads volume and sound paths. Missing files are logged
// and skipped.
func (c *Cues) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	sounds := make(map[model.Severity]string)
	for _, sev := range model.Severities() {
		path := cfg.GetSoundForSeverity(sev)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			c.logger.Warn("sound file not found", "severity", sev, "path", path)
			continue
		}
		sounds[sev] = path
	}

	c.player.ClearCache()
	c.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	c.mu.Lock()
	c.enabled = cfg.Audio.Enabled
	c.sounds = sounds
	c.mu.Unlock()

	c.logger.Debug("audio cues configured", "enabled", cfg.Audio.Enabled, "sounds", len(sounds))
}

// Enabled reports whether cues are played.
func (c *Cues) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// SoundFor returns the configured sound for a severity.
func (c *Cues) SoundFor(s model.Severity) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.sounds[s]
	return path, ok
}

// Play starts the cue for a severity in the background. It returns false
// when nothing will be played.
func (c *Cues) Play(s model.Severity) bool {
	if !c.Enabled() {
		return false
	}
	path, ok := c.SoundFor(s)
	if !ok {
		return false
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.player.Play(path); err != nil {
			c.logger.Warn("failed to play sound", "severity", s, "path", path, "error", err)
		}
	}()
	return true
}

// Close waits for pending decodes and releases the speaker.
func (c *Cues) Close() {
	c.wg.Wait()
	c.player.Close()
}
