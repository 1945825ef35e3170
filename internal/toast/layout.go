package toast

import (
	"fmt"
	"strings"
)

// Position is the screen corner banners stack from.
type Position int

const (
	BottomRight Position = iota
	BottomLeft
	BottomCenter
	TopRight
	TopLeft
	TopCenter
)

var positionNames = map[Position]string{
	BottomRight:  "bottom-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	TopRight:     "top-right",
	TopLeft:      "top-left",
	TopCenter:    "top-center",
}

// String returns the config name of the position.
func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePosition parses a config position name such as "top-left".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return BottomRight, fmt.Errorf("invalid position %q", s)
}

// IsBottom returns true if banners stack upward from the bottom edge.
func (p Position) IsBottom() bool {
	return p == BottomRight || p == BottomLeft || p == BottomCenter
}

// Layout holds banner geometry in host units.
type Layout struct {
	Position     Position
	Width        float64
	Height       float64
	Margin       float64 // Distance from the anchored corner
	Gap          float64 // Space between stacked banners
	AccentWidth  float64
	Padding      float64 // Text offset past the accent bar
	CornerRadius float64
}

// DefaultLayout returns the window-sized banner geometry.
func DefaultLayout() Layout {
	return Layout{
		Position:     BottomRight,
		Width:        250,
		Height:       50,
		Margin:       10,
		Gap:          5,
		AccentWidth:  5,
		Padding:      10,
		CornerRadius: 4,
	}
}

// Origin returns the top-left corner of the banner at stack index i.
// Index 0 sits at the anchor; each further index moves one banner height
// plus gap away from the corner.
func (l Layout) Origin(screen Size, i int) Point {
	var x float64
	switch l.Position {
	case BottomLeft, TopLeft:
		x = l.Margin
	case BottomCenter, TopCenter:
		x = (screen.W - l.Width) / 2
	default:
		x = screen.W - l.Margin - l.Width
	}

	step := float64(i) * (l.Height + l.Gap)
	if l.Position.IsBottom() {
		return Point{X: x, Y: screen.H - l.Margin - l.Height - step}
	}
	return Point{X: x, Y: l.Margin + step}
}

// TextOrigin returns where a message of the given extent starts inside a
// banner whose top-left corner is origin.
func (l Layout) TextOrigin(origin Point, text Size) Point {
	return Point{
		X: origin.X + l.AccentWidth + l.Padding,
		Y: origin.Y + (l.Height-text.H)/2,
	}
}
