// Package demo is a small scene that exercises the animation stores, color
// interpolation and the toast queue once per frame. Both the window and the
// terminal host draw it.
package demo

import (
	"fmt"
	"image/color"
	"time"

	"github.com/jmylchreest/imtricks/internal/colors"
	"github.com/jmylchreest/imtricks/internal/host"
	"github.com/jmylchreest/imtricks/internal/model"
	"github.com/jmylchreest/imtricks/internal/toast"
)

// Animation identifiers and speeds.
const (
	BoxID       = "box.alpha"
	HeaderID    = "header"
	BoxSpeed    = 15
	HeaderSpeed = 0.05
)

// Geometry in pixels.
const (
	margin       = 10
	boxSize      = 30
	headerWidth  = 513
	headerHeight = 30
)

var (
	headerOff = color.NRGBA{R: 255, A: 255}
	headerOn  = color.NRGBA{G: 255, A: 255}
	boxColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

var messages = map[model.Severity]string{
	model.SeverityDefault: "Heads up",
	model.SeveritySuccess: "Saved",
	model.SeverityWarning: "Running low on disk",
	model.SeverityDanger:  "Connection lost",
}

// Action is an input the hosts map their keys to.
type Action int

const (
	ActionNone Action = iota
	ActionToggleBox
	ActionToggleHeader
	ActionNotifyDefault
	ActionNotifySuccess
	ActionNotifyWarning
	ActionNotifyDanger
	ActionQuit
)

// ActionForKey maps a key name to an action. Both hosts use the same
// bindings: space toggles the box, h the header, 1-4 raise a toast and q
// quits.
func ActionForKey(key string) Action {
	switch key {
	case " ", "space":
		return ActionToggleBox
	case "h":
		return ActionToggleHeader
	case "1":
		return ActionNotifyDefault
	case "2":
		return ActionNotifySuccess
	case "3":
		return ActionNotifyWarning
	case "4":
		return ActionNotifyDanger
	case "q", "esc", "escape", "ctrl+c":
		return ActionQuit
	default:
		return ActionNone
	}
}

// Stats describes what the last frame drew.
type Stats struct {
	BoxAlpha    int
	HeaderStage float64
	Header      color.NRGBA
	Toasts      int
}

// Scene is the demo's UI state. The animated values live in the host
// context; the scene only holds the toggles that drive them.
type Scene struct {
	ctx           *host.Context
	BoxVisible    bool
	HeaderChecked bool
	raised        int
}

// NewScene creates a scene drawing into ctx.
func NewScene(ctx *host.Context) *Scene {
	return &Scene{ctx: ctx, BoxVisible: true}
}

// ToggleBox flips the box between fading in and fading out.
func (s *Scene) ToggleBox() {
	s.BoxVisible = !s.BoxVisible
}

// ToggleHeader flips the header between red and green.
func (s *Scene) ToggleHeader() {
	s.HeaderChecked = !s.HeaderChecked
}

// Notify raises a numbered toast for severity.
func (s *Scene) Notify(severity model.Severity) model.Toast {
	s.raised++
	msg, ok := messages[severity]
	if !ok {
		msg = messages[model.SeverityDefault]
	}
	return s.ctx.Notify(fmt.Sprintf("%s #%d", msg, s.raised), severity)
}

// Handle applies an action and reports whether the host should quit.
func (s *Scene) Handle(a Action) (quit bool) {
	switch a {
	case ActionToggleBox:
		s.ToggleBox()
	case ActionToggleHeader:
		s.ToggleHeader()
	case ActionNotifyDefault:
		s.Notify(model.SeverityDefault)
	case ActionNotifySuccess:
		s.Notify(model.SeveritySuccess)
	case ActionNotifyWarning:
		s.Notify(model.SeverityWarning)
	case ActionNotifyDanger:
		s.Notify(model.SeverityDanger)
	case ActionQuit:
		return true
	}
	return false
}

// Draw renders one frame. The host calls it between BeginFrame and EndFrame.
func (s *Scene) Draw(surf toast.Surface, screen toast.Size, now time.Time) (Stats, error) {
	var stats Stats

	alpha, err := s.ctx.Ints.Advance(BoxID, s.BoxVisible, 0, 255, BoxSpeed)
	if err != nil {
		return stats, fmt.Errorf("animate box: %w", err)
	}
	stage, err := s.ctx.Floats.Advance(HeaderID, s.HeaderChecked, 0, 1, HeaderSpeed)
	if err != nil {
		return stats, fmt.Errorf("animate header: %w", err)
	}

	th := s.ctx.Theme()
	header := colors.Lerp(headerOff, headerOn, stage)

	width := min(headerWidth, screen.W-2*margin)
	headerMin := toast.Point{X: margin, Y: margin}
	surf.FillRect(headerMin, headerMin.Add(toast.Point{X: width, Y: headerHeight}), header, 0)
	label := "space: box  h: header  1-4: toast  q: quit"
	size := surf.MeasureText(label)
	surf.DrawText(toast.Point{X: margin * 2, Y: margin + (headerHeight-size.H)/2}, th.Foreground(), label)

	boxMin := toast.Point{X: margin, Y: margin*2 + headerHeight}
	box := boxColor
	box.A = uint8(alpha)
	surf.FillRect(boxMin, boxMin.Add(toast.Point{X: boxSize, Y: boxSize}), box, 0)

	stats.BoxAlpha = alpha
	stats.HeaderStage = stage
	stats.Header = header
	stats.Toasts = s.ctx.RenderToasts(surf, screen, now)
	return stats, nil
}
