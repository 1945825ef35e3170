package toast

import (
	"image/color"

	"github.com/jmylchreest/imtricks/internal/model"
)

// Point is a position in host units. The origin is the top-left corner.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is an extent in host units.
type Size struct {
	W, H float64
}

// Surface is the drawing collaborator a host supplies to Render.
// Hosts decide what a unit is: pixels for a window, cells for a terminal.
type Surface interface {
	// FillRect fills the rectangle spanning min to max.
	FillRect(min, max Point, c color.NRGBA, radius float64)
	// DrawText draws text with its top-left corner at pos.
	DrawText(pos Point, c color.NRGBA, text string)
	// MeasureText returns the extent text would occupy.
	MeasureText(text string) Size
}

// Style supplies banner colors.
type Style interface {
	Background() color.NRGBA
	Foreground() color.NRGBA
	Accent(model.Severity) color.NRGBA
}
