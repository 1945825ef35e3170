package host

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/model"
	"github.com/jmylchreest/imtricks/internal/theme"
	"github.com/jmylchreest/imtricks/internal/toast"
)

type fakeCues struct {
	played  []model.Severity
	updates int
	closed  bool
}

func (f *fakeCues) Play(s model.Severity) bool {
	f.played = append(f.played, s)
	return true
}
func (f *fakeCues) UpdateConfig(*config.Config) { f.updates++ }
func (f *fakeCues) Close()                      { f.closed = true }

type fakeMirror struct {
	toasts []model.Toast
	closed bool
}

func (f *fakeMirror) Notify(t model.Toast) bool {
	f.toasts = append(f.toasts, t)
	return true
}
func (f *fakeMirror) UpdateConfig(*config.Config) {}
func (f *fakeMirror) Close() error {
	f.closed = true
	return nil
}

func newTestContext(t *testing.T, cfg *config.Config, opts ...Option) *Context {
	t.Helper()
	opts = append([]Option{WithThemeLoader(theme.NewLoader(t.TempDir(), nil))}, opts...)
	c, err := NewContext(cfg, nil, opts...)
	require.NoError(t, err)
	return c
}

func TestFrame_Tick(t *testing.T) {
	var f Frame
	start := time.UnixMilli(0)

	assert.Equal(t, time.Duration(0), f.Tick(start), "first frame has no delta")
	assert.Equal(t, 16*time.Millisecond, f.Tick(start.Add(16*time.Millisecond)))
	assert.InDelta(t, 0.016, f.DeltaSeconds(), 1e-9)
	assert.InDelta(t, 62.5, f.FPS(), 1e-9)

	assert.Equal(t, MaxDelta, f.Tick(start.Add(time.Minute)), "stalls are capped")
	assert.Equal(t, time.Duration(0), f.Tick(start), "clock going backwards reports zero")
	assert.Equal(t, uint64(4), f.Count())
}

func TestNewContext_Defaults(t *testing.T) {
	c := newTestContext(t, nil)
	defer c.Close()

	assert.Equal(t, config.DefaultToastDuration, c.Toasts.Duration())
	assert.Equal(t, toast.BottomRight, c.Toasts.Layout().Position)
	assert.Equal(t, "default", c.Theme().Name)
	assert.NotNil(t, c.Ints)
	assert.NotNil(t, c.Floats)
}

func TestNewContext_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toast.Position = "sideways"

	_, err := NewContext(cfg, nil)
	require.Error(t, err)

	var hostErr *HostError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, "invalid configuration", hostErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestContext_AnimationUsesFrameDelta(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Animation.Rate = "time"
	c := newTestContext(t, cfg)
	defer c.Close()

	start := time.UnixMilli(0)
	c.BeginFrame(start)
	v, err := c.Floats.Advance("fade", true, 0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "no movement on the first frame in time mode")

	c.BeginFrame(start.Add(250 * time.Millisecond))
	v, err = c.Floats.Advance("fade", true, 0, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestContext_NotifyFansOut(t *testing.T) {
	cues := &fakeCues{}
	mirror := &fakeMirror{}
	now := time.UnixMilli(1000)
	c := newTestContext(t, nil,
		WithCues(cues),
		WithMirror(mirror),
		WithClock(func() time.Time { return now }),
	)

	raised := c.Notify("Saved", model.SeveritySuccess)

	assert.Equal(t, int64(4000), raised.ExpiresAt.UnixMilli())
	assert.Equal(t, 1, c.Toasts.Len())
	assert.Equal(t, []model.Severity{model.SeveritySuccess}, cues.played)
	require.Len(t, mirror.toasts, 1)
	assert.Equal(t, raised.ID, mirror.toasts[0].ID)
	assert.Equal(t, 1, cues.updates, "config applied once at construction")

	require.NoError(t, c.Close())
	assert.True(t, cues.closed)
	assert.True(t, mirror.closed)
	assert.Equal(t, 0, c.Toasts.Len())
}

func TestContext_EndFrameReclaims(t *testing.T) {
	now := time.UnixMilli(0)
	c := newTestContext(t, nil, WithClock(func() time.Time { return now }))
	defer c.Close()

	c.Notify("old", model.SeverityDefault)
	c.EndFrame(time.UnixMilli(2000))
	assert.Equal(t, 1, c.Toasts.Len())

	c.EndFrame(time.UnixMilli(3001))
	assert.Equal(t, 0, c.Toasts.Len())
}

func TestContext_EndFrameWithoutReclaim(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toast.Reclaim = false
	now := time.UnixMilli(0)
	c := newTestContext(t, cfg, WithClock(func() time.Time { return now }))
	defer c.Close()

	c.Notify("old", model.SeverityDefault)
	c.EndFrame(time.UnixMilli(10_000))
	assert.Equal(t, 1, c.Toasts.Len())
	assert.Equal(t, 0, c.Toasts.Pending(time.UnixMilli(10_000)))
}

func TestContext_PendingConfigAppliedAtFrameStart(t *testing.T) {
	c := newTestContext(t, nil)
	defer c.Close()

	updated := config.DefaultConfig()
	updated.Toast.Duration = config.Duration(500 * time.Millisecond)
	updated.Toast.Position = "top-left"
	updated.Theme.Name = "light"

	c.queueConfig(updated)
	assert.Equal(t, config.DefaultToastDuration, c.Toasts.Duration(), "not applied until the next frame")

	c.BeginFrame(time.Now())
	assert.Equal(t, 500*time.Millisecond, c.Toasts.Duration())
	assert.Equal(t, toast.TopLeft, c.Toasts.Layout().Position)
	assert.Equal(t, "light", c.Theme().Name)
	assert.Same(t, updated, c.Config())
}

func TestContext_ApplyConfigKeepsState(t *testing.T) {
	c := newTestContext(t, nil)
	defer c.Close()

	c.BeginFrame(time.UnixMilli(0))
	_, err := c.Ints.Advance("box", true, 0, 255, 15)
	require.NoError(t, err)
	c.Notify("kept", model.SeverityDefault)

	c.ApplyConfig(config.DefaultConfig())
	assert.Equal(t, 1, c.Ints.Len())
	assert.Equal(t, 1, c.Toasts.Len())
}

func TestContext_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Save(path))

	c := newTestContext(t, cfg)
	defer c.Close()
	require.NoError(t, c.Watch(context.Background(), path))

	updated := config.DefaultConfig()
	updated.Toast.Duration = config.Duration(time.Second)
	require.NoError(t, updated.Save(path))

	require.Eventually(t, func() bool {
		c.BeginFrame(time.Now())
		return c.Toasts.Duration() == time.Second
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLayoutFromConfig(t *testing.T) {
	tc := config.DefaultConfig().Toast
	tc.Position = "top-center"
	tc.Width = 300

	l := LayoutFromConfig(tc)
	assert.Equal(t, toast.TopCenter, l.Position)
	assert.InDelta(t, 300, l.Width, 1e-9)
	assert.InDelta(t, 50, l.Height, 1e-9)
	assert.InDelta(t, 4, l.CornerRadius, 1e-9)
}
