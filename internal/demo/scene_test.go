package demo

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/imtricks/internal/host"
	"github.com/jmylchreest/imtricks/internal/model"
	"github.com/jmylchreest/imtricks/internal/theme"
	"github.com/jmylchreest/imtricks/internal/toast"
)

type recordingSurface struct {
	fills []color.NRGBA
	texts []string
}

func (r *recordingSurface) FillRect(_, _ toast.Point, c color.NRGBA, _ float64) {
	r.fills = append(r.fills, c)
}

func (r *recordingSurface) DrawText(_ toast.Point, _ color.NRGBA, text string) {
	r.texts = append(r.texts, text)
}

func (r *recordingSurface) MeasureText(text string) toast.Size {
	return toast.Size{W: float64(7 * len(text)), H: 13}
}

var screen = toast.Size{W: 1280, H: 720}

func newScene(t *testing.T, now *time.Time) (*Scene, *host.Context) {
	t.Helper()
	ctx, err := host.NewContext(nil, nil,
		host.WithThemeLoader(theme.NewLoader(t.TempDir(), nil)),
		host.WithClock(func() time.Time { return *now }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return NewScene(ctx), ctx
}

func frame(t *testing.T, s *Scene, ctx *host.Context, now time.Time) (Stats, *recordingSurface) {
	t.Helper()
	surf := &recordingSurface{}
	ctx.BeginFrame(now)
	stats, err := s.Draw(surf, screen, now)
	require.NoError(t, err)
	ctx.EndFrame(now)
	return stats, surf
}

func TestScene_BoxFadesIn(t *testing.T) {
	now := time.UnixMilli(0)
	s, ctx := newScene(t, &now)

	stats, surf := frame(t, s, ctx, now)
	assert.Equal(t, 15, stats.BoxAlpha, "first frame steps by the full speed")
	require.Len(t, surf.fills, 2)
	assert.Equal(t, uint8(15), surf.fills[1].A)

	for i := 1; i < 40; i++ {
		now = now.Add(16 * time.Millisecond)
		stats, _ = frame(t, s, ctx, now)
	}
	assert.Equal(t, 255, stats.BoxAlpha)

	s.ToggleBox()
	now = now.Add(16 * time.Millisecond)
	stats, _ = frame(t, s, ctx, now)
	assert.Equal(t, 240, stats.BoxAlpha)
}

func TestScene_HeaderBlendsToGreen(t *testing.T) {
	now := time.UnixMilli(0)
	s, ctx := newScene(t, &now)

	stats, _ := frame(t, s, ctx, now)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, stats.Header)

	s.ToggleHeader()
	now = now.Add(16 * time.Millisecond)
	stats, _ = frame(t, s, ctx, now)
	assert.Greater(t, stats.HeaderStage, 0.0)
	assert.Less(t, stats.Header.R, uint8(255))
	assert.Greater(t, stats.Header.G, uint8(0))

	for i := 0; i < 40; i++ {
		now = now.Add(16 * time.Millisecond)
		stats, _ = frame(t, s, ctx, now)
	}
	assert.Equal(t, 1.0, stats.HeaderStage)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, stats.Header)
}

func TestScene_NotifyRendersToasts(t *testing.T) {
	now := time.UnixMilli(0)
	s, ctx := newScene(t, &now)

	s.Notify(model.SeveritySuccess)
	s.Notify(model.SeverityDanger)

	stats, surf := frame(t, s, ctx, now)
	assert.Equal(t, 2, stats.Toasts)
	assert.Contains(t, surf.texts, "Saved #1")
	assert.Contains(t, surf.texts, "Connection lost #2")

	// Both expire after the default three seconds and are reclaimed
	now = now.Add(3001 * time.Millisecond)
	stats, _ = frame(t, s, ctx, now)
	assert.Equal(t, 0, stats.Toasts)
	assert.Equal(t, 0, ctx.Toasts.Len())
}

func TestScene_HeaderLabel(t *testing.T) {
	now := time.UnixMilli(0)
	s, ctx := newScene(t, &now)

	_, surf := frame(t, s, ctx, now)
	require.NotEmpty(t, surf.texts)
	assert.True(t, strings.HasPrefix(surf.texts[0], "space"))
}

func TestActionForKey(t *testing.T) {
	tests := map[string]Action{
		"space": ActionToggleBox,
		" ":     ActionToggleBox,
		"h":     ActionToggleHeader,
		"1":     ActionNotifyDefault,
		"2":     ActionNotifySuccess,
		"3":     ActionNotifyWarning,
		"4":     ActionNotifyDanger,
		"q":     ActionQuit,
		"esc":   ActionQuit,
		"x":     ActionNone,
	}
	for key, want := range tests {
		assert.Equal(t, want, ActionForKey(key), "key %q", key)
	}
}

func TestScene_Handle(t *testing.T) {
	now := time.UnixMilli(0)
	s, ctx := newScene(t, &now)

	assert.False(t, s.Handle(ActionToggleBox))
	assert.False(t, s.BoxVisible)
	assert.False(t, s.Handle(ActionToggleHeader))
	assert.True(t, s.HeaderChecked)

	assert.False(t, s.Handle(ActionNotifyWarning))
	entries := ctx.Toasts.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.SeverityWarning, entries[0].Severity)

	assert.False(t, s.Handle(ActionNone))
	assert.True(t, s.Handle(ActionQuit))
}
