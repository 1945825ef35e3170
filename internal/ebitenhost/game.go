// Package ebitenhost runs the demo scene in a desktop window using ebiten.
// Sizes are in pixels.
package ebitenhost

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/demo"
	"github.com/jmylchreest/imtricks/internal/host"
	"github.com/jmylchreest/imtricks/internal/toast"
)

var clearColor = color.NRGBA{R: 18, G: 18, B: 22, A: 255}

// keys maps window keys to the shared key names understood by the demo.
var keys = map[ebiten.Key]string{
	ebiten.KeySpace:  "space",
	ebiten.KeyH:      "h",
	ebiten.Key1:      "1",
	ebiten.Key2:      "2",
	ebiten.Key3:      "3",
	ebiten.Key4:      "4",
	ebiten.KeyQ:      "q",
	ebiten.KeyEscape: "esc",
}

// Game adapts a host context and demo scene to ebiten.Game.
type Game struct {
	ctx     context.Context
	host    *host.Context
	scene   *demo.Scene
	surface *Surface
	logger  *slog.Logger

	width, height int
	drawErr       error
}

// NewGame creates a game drawing scene through hc.
func NewGame(ctx context.Context, hc *host.Context, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		ctx:     ctx,
		host:    hc,
		scene:   demo.NewScene(hc),
		surface: NewSurface(),
		logger:  logger,
	}
}

// Update handles input. It runs at the configured TPS.
func (g *Game) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	for key, name := range keys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if g.scene.Handle(demo.ActionForKey(name)) {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw renders one frame of the scene.
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	g.host.BeginFrame(now)
	defer g.host.EndFrame(now)

	screen.Fill(clearColor)
	g.surface.Target(screen)

	size := toast.Size{W: float64(g.width), H: float64(g.height)}
	if _, err := g.scene.Draw(g.surface, size, now); err != nil {
		g.drawErr = fmt.Errorf("draw scene: %w", err)
	}
}

// Layout uses the window size as the screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed, the user quits, or
// ctx is cancelled.
func Run(ctx context.Context, hc *host.Context, cfg config.WindowConfig, logger *slog.Logger) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	g := NewGame(ctx, hc, logger)
	g.logger.Debug("starting window host", "width", cfg.Width, "height", cfg.Height, "tps", cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return &host.HostError{Message: "window host failed", Cause: err}
	}
	return nil
}
