// Package termhost runs the demo scene in a terminal with bubbletea. Each
// cell stands in for a 7x13 pixel block.
package termhost

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/imtricks/internal/demo"
	"github.com/jmylchreest/imtricks/internal/host"
)

// chromeRows is the space below the canvas for the status and help lines.
const chromeRows = 2

var clearColor = color.NRGBA{R: 18, G: 18, B: 22, A: 255}

type frameMsg time.Time

// Model is the bubbletea model driving one host context.
type Model struct {
	host   *host.Context
	scene  *demo.Scene
	canvas *Canvas
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	interval time.Duration
	stats    demo.Stats
	now      time.Time
	err      error
	ready    bool
}

// New creates a terminal model drawing the demo scene through hc.
func New(hc *host.Context, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	tps := hc.Config().Window.TPS
	if tps <= 0 {
		tps = 30
	}
	return Model{
		host:     hc,
		scene:    demo.NewScene(hc),
		canvas:   NewCanvas(0, 0, clearColor),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		logger:   logger,
		interval: time.Second / time.Duration(tps),
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scene.Handle(m.keys.Action(msg)) {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, max(msg.Height-chromeRows, 0), clearColor)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case frameMsg:
		m.frame(time.Time(msg))
		if m.err != nil {
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

// frame advances and draws one frame onto the canvas.
func (m *Model) frame(now time.Time) {
	m.now = now
	m.host.BeginFrame(now)
	defer m.host.EndFrame(now)

	m.canvas.Clear()
	stats, err := m.scene.Draw(m.canvas, m.canvas.Size(), now)
	if err != nil {
		m.err = fmt.Errorf("draw scene: %w", err)
		return
	}
	m.stats = stats
}

// View renders the canvas, a status line and the key help.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()) + "\n"
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return m.canvas.String() + "\n" +
		statusStyle.Render(m.status()) + "\n" +
		m.help.View(m.keys)
}

// status summarises the frame rate and toast queue.
func (m Model) status() string {
	s := fmt.Sprintf("%.0f fps  box %d  header %.2f  toasts %d",
		m.host.Frame.FPS(), m.stats.BoxAlpha, m.stats.HeaderStage, m.stats.Toasts)

	var next time.Time
	for _, t := range m.host.Toasts.Entries() {
		if t.Expired(m.now) {
			continue
		}
		if next.IsZero() || t.ExpiresAt.Before(next) {
			next = t.ExpiresAt
		}
	}
	if !next.IsZero() {
		s += "  next expiry " + humanize.RelTime(next, m.now, "ago", "from now")
	}
	return s
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the terminal host and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, hc *host.Context, logger *slog.Logger) error {
	p := tea.NewProgram(New(hc, logger), tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return &host.HostError{Message: "terminal host failed", Cause: err}
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
