package termhost

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/imtricks/internal/colors"
	"github.com/jmylchreest/imtricks/internal/toast"
)

// Each terminal cell stands in for a block of pixels, so the pixel layout
// from the config works unchanged.
const (
	CellWidth  = 7
	CellHeight = 13
)

type cell struct {
	ch rune
	fg color.NRGBA
	bg color.NRGBA
}

// Canvas is a grid of styled cells implementing toast.Surface. Coordinates
// passed to it are pixels; they are snapped to the nearest cell.
type Canvas struct {
	cols, rows int
	base       color.NRGBA
	cells      []cell
}

// NewCanvas creates a canvas cols wide and rows high cleared to base.
func NewCanvas(cols, rows int, base color.NRGBA) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows, base)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int, base color.NRGBA) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.base = base
	if n := c.cols * c.rows; cap(c.cells) >= n {
		c.cells = c.cells[:n]
	} else {
		c.cells = make([]cell, n)
	}
	c.Clear()
}

// Clear resets every cell to a blank on the base color.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', fg: c.base, bg: c.base}
	}
}

// Size returns the canvas extent in pixels.
func (c *Canvas) Size() toast.Size {
	return toast.Size{W: float64(c.cols * CellWidth), H: float64(c.rows * CellHeight)}
}

// Dims returns the grid size in cells.
func (c *Canvas) Dims() (cols, rows int) {
	return c.cols, c.rows
}

func toCol(x float64) int { return int(math.Round(x / CellWidth)) }
func toRow(y float64) int { return int(math.Round(y / CellHeight)) }

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// FillRect blends c over the covered cells. Cells cannot be rounded, so the
// radius is ignored.
func (c *Canvas) FillRect(lo, hi toast.Point, fill color.NRGBA, _ float64) {
	c0, c1 := toCol(lo.X), toCol(hi.X)
	r0, r1 := toRow(lo.Y), toRow(hi.Y)
	if c1 == c0 && hi.X > lo.X {
		c1 = c0 + 1
	}
	if r1 == r0 && hi.Y > lo.Y {
		r1 = r0 + 1
	}

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if p := c.at(col, row); p != nil {
				p.bg = over(p.bg, fill)
			}
		}
	}
}

// DrawText writes text starting at the cell nearest pos. Text past the
// right edge is clipped.
func (c *Canvas) DrawText(pos toast.Point, fg color.NRGBA, text string) {
	col, row := toCol(pos.X), toRow(pos.Y)
	for _, r := range text {
		if p := c.at(col, row); p != nil {
			p.ch = r
			p.fg = over(p.bg, fg)
		}
		col++
	}
}

// MeasureText returns the pixel extent of text on one row.
func (c *Canvas) MeasureText(text string) toast.Size {
	return toast.Size{W: float64(lipgloss.Width(text) * CellWidth), H: CellHeight}
}

// Text returns the characters on a row with trailing blanks removed.
func (c *Canvas) Text(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for col := range c.cols {
		b.WriteRune(c.cells[row*c.cols+col].ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// Background returns the blended background of a cell.
func (c *Canvas) Background(col, row int) (color.NRGBA, bool) {
	p := c.at(col, row)
	if p == nil {
		return color.NRGBA{}, false
	}
	return p.bg, true
}

// String renders the canvas with lipgloss, one styled run per stretch of
// cells sharing colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg && line[end].bg == line[start].bg {
				end++
			}
			var run strings.Builder
			for _, p := range line[start:end] {
				run.WriteRune(p.ch)
			}
			b.WriteString(styleFor(line[start]).Render(run.String()))
			start = end
		}
	}
	return b.String()
}

func styleFor(p cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexOpaque(p.fg))).
		Background(lipgloss.Color(hexOpaque(p.bg)))
}

// over composites src onto an opaque dst.
func over(dst, src color.NRGBA) color.NRGBA {
	opaque := src
	opaque.A = 255
	dst.A = 255
	return colors.Lerp(dst, opaque, float64(src.A)/255)
}

func hexOpaque(c color.NRGBA) string {
	c.A = 255
	return colors.ToHex(c)
}
