// Package host owns the per-application state an immediate-mode frame loop
// needs: the animation stores, the toast queue, the active theme and the
// frame clock. Window and terminal hosts create one Context and drive it
// with BeginFrame and EndFrame.
package host

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmylchreest/imtricks/internal/anim"
	"github.com/jmylchreest/imtricks/internal/audio"
	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/desktop"
	"github.com/jmylchreest/imtricks/internal/model"
	"github.com/jmylchreest/imtricks/internal/theme"
	"github.com/jmylchreest/imtricks/internal/toast"
	"github.com/jmylchreest/imtricks/internal/watch"
)

// pendingConfigs bounds how many reloaded configs can wait for the next frame.
const pendingConfigs = 4

// CuePlayer plays a sound for a severity.
type CuePlayer interface {
	Play(s model.Severity) bool
	UpdateConfig(cfg *config.Config)
	Close()
}

// Mirror forwards toasts to somewhere outside the window.
type Mirror interface {
	Notify(t model.Toast) bool
	UpdateConfig(cfg *config.Config)
	Close() error
}

// Context is the state shared by one host's frames. It must only be used
// from the render thread; the config watcher hands new configs over through
// a channel drained by BeginFrame.
type Context struct {
	Ints   *anim.IntStore
	Floats *anim.FloatStore
	Toasts *toast.Queue
	Frame  *Frame

	logger  *slog.Logger
	cfg     *config.Config
	themes  *theme.Loader
	theme   *theme.Theme
	clock   func() time.Time
	cues    CuePlayer
	mirror  Mirror
	watcher *watch.ConfigWatcher
	pending chan *config.Config
}

// Option configures a Context.
type Option func(*Context)

// WithClock sets the time source used to stamp toasts.
func WithClock(clock func() time.Time) Option {
	return func(c *Context) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithThemeLoader sets the loader used to resolve theme names.
func WithThemeLoader(l *theme.Loader) Option {
	return func(c *Context) {
		c.themes = l
	}
}

// WithCues sets the sound cue player instead of building one from config.
func WithCues(p CuePlayer) Option {
	return func(c *Context) {
		c.cues = p
	}
}

// WithMirror sets the desktop mirror instead of connecting to the session bus.
func WithMirror(m Mirror) Option {
	return func(c *Context) {
		c.mirror = m
	}
}

// NewContext validates cfg and builds a Context from it. A nil cfg uses
// the defaults. Audio and desktop mirroring are started when enabled in
// cfg; failing to start either is logged and the context runs without it.
func NewContext(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Context, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &HostError{Message: "invalid configuration", Cause: err}
	}
	mode, err := anim.ParseRateMode(cfg.Animation.Rate)
	if err != nil {
		return nil, &HostError{Message: "invalid animation rate", Cause: err}
	}

	c := &Context{
		Frame:   &Frame{},
		logger:  logger,
		clock:   time.Now,
		pending: make(chan *config.Config, pendingConfigs),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.themes == nil {
		dir, err := theme.ThemesDir()
		if err != nil {
			logger.Debug("no user themes directory", "error", err)
		}
		c.themes = theme.NewLoader(dir, logger)
	}

	c.Ints = anim.NewIntStore(c.Frame, mode)
	c.Floats = anim.NewFloatStore(c.Frame, mode)
	c.Toasts = toast.NewQueue(
		toast.WithClock(func() time.Time { return c.clock() }),
		toast.WithLogger(logger),
	)

	if c.cues == nil && cfg.Audio.Enabled {
		c.cues = audio.NewCues(cfg, logger)
	}
	if c.mirror == nil && cfg.Desktop.Mirror {
		m, err := desktop.Connect(cfg, logger)
		if err != nil {
			logger.Warn("desktop mirroring disabled", "error", err)
		} else {
			c.mirror = m
		}
	}

	c.ApplyConfig(cfg)
	return c, nil
}

// LayoutFromConfig converts the toast section of a config into a layout.
func LayoutFromConfig(tc config.ToastConfig) toast.Layout {
	pos, err := toast.ParsePosition(tc.Position)
	if err != nil {
		pos = toast.BottomRight
	}
	return toast.Layout{
		Position:     pos,
		Width:        float64(tc.Width),
		Height:       float64(tc.Height),
		Margin:       float64(tc.Margin),
		Gap:          float64(tc.Gap),
		AccentWidth:  float64(tc.AccentWidth),
		Padding:      float64(tc.Padding),
		CornerRadius: tc.CornerRadius,
	}
}

// ApplyConfig updates toast duration and layout, the animation rate, the
// theme, and the optional audio and desktop outputs. Existing toasts keep
// their expiry and existing animation values are kept.
func (c *Context) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	c.cfg = cfg

	c.Toasts.SetDuration(cfg.Toast.Duration.Duration())
	c.Toasts.SetLayout(LayoutFromConfig(cfg.Toast))

	if mode, err := anim.ParseRateMode(cfg.Animation.Rate); err == nil {
		c.Ints.SetMode(mode)
		c.Floats.SetMode(mode)
	}

	c.theme = c.themes.Load(cfg.Theme.Name).WithOpacity(cfg.Theme.Opacity)

	if c.cues != nil {
		c.cues.UpdateConfig(cfg)
	} else if cfg.Audio.Enabled {
		c.cues = audio.NewCues(cfg, c.logger)
	}
	if c.mirror != nil {
		c.mirror.UpdateConfig(cfg)
	}

	c.logger.Debug("configuration applied",
		"theme", c.theme.Name,
		"position", cfg.Toast.Position,
		"duration", cfg.Toast.Duration.Duration(),
		"rate", cfg.Animation.Rate,
	)
}

// Config returns the configuration in effect.
func (c *Context) Config() *config.Config {
	return c.cfg
}

// Theme returns the active palette.
func (c *Context) Theme() *theme.Theme {
	return c.theme
}

// Watch reloads the config file at path whenever it changes. New configs
// take effect at the start of the next frame.
func (c *Context) Watch(ctx context.Context, path string) error {
	if c.watcher != nil {
		return nil
	}
	w, err := watch.NewConfigWatcher(path, c.logger)
	if err != nil {
		return &HostError{Message: "failed to create config watcher", Cause: err}
	}
	w.SetReloadCallback(c.queueConfig)
	if err := w.Start(ctx, c.cfg); err != nil {
		_ = w.Stop()
		return &HostError{Message: "failed to watch config", Cause: err}
	}
	c.watcher = w
	return nil
}

// queueConfig hands a reloaded config to the render thread.
func (c *Context) queueConfig(cfg *config.Config) {
	select {
	case c.pending <- cfg:
	default:
		c.logger.Warn("dropping config reload, previous reloads not yet applied")
	}
}

// BeginFrame starts a frame at now. It updates the frame clock and applies
// any configs reloaded since the last frame.
func (c *Context) BeginFrame(now time.Time) {
	c.Frame.Tick(now)
	for {
		select {
		case cfg := <-c.pending:
			c.ApplyConfig(cfg)
		default:
			return
		}
	}
}

// Notify raises a toast and fires the audio cue and desktop mirror for it.
func (c *Context) Notify(message string, severity model.Severity) model.Toast {
	t := c.Toasts.Enqueue(message, severity)
	if c.cues != nil {
		c.cues.Play(severity)
	}
	if c.mirror != nil {
		c.mirror.Notify(t)
	}
	return t
}

// RenderToasts draws the toast queue with the active theme.
func (c *Context) RenderToasts(s toast.Surface, screen toast.Size, now time.Time) int {
	return c.Toasts.Render(s, c.theme, screen, now)
}

// EndFrame finishes a frame, dropping expired toasts when reclaim is on.
func (c *Context) EndFrame(now time.Time) {
	if c.cfg.Toast.Reclaim {
		c.Toasts.Reclaim(now)
	}
}

// Close stops background work and resets all state.
func (c *Context) Close() error {
	var errs []error
	if c.watcher != nil {
		errs = append(errs, c.watcher.Stop())
		c.watcher = nil
	}
	if c.cues != nil {
		c.cues.Close()
		c.cues = nil
	}
	if c.mirror != nil {
		errs = append(errs, c.mirror.Close())
		c.mirror = nil
	}

	c.Ints.Reset()
	c.Floats.Reset()
	c.Toasts.Clear()
	return errors.Join(errs...)
}
