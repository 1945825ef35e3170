// Package colors provides stateless color helpers for animated widgets.
package colors

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lerp linearly interpolates each channel of start toward end.
// stage is not clamped; results outside [0,1] extrapolate and are then
// saturated to the 8-bit channel range.
func Lerp(start, end color.NRGBA, stage float64) color.NRGBA {
	c := toColorful(start).BlendRgb(toColorful(end), stage)
	return fromColorful(c, lerpChannel(start.A, end.A, stage))
}

// LerpHcl blends through the HCL color space, which keeps perceived
// brightness steadier than a plain RGB blend. Alpha is blended linearly.
func LerpHcl(start, end color.NRGBA, stage float64) color.NRGBA {
	c := toColorful(start).BlendHcl(toColorful(end), stage)
	return fromColorful(c, lerpChannel(start.A, end.A, stage))
}

// Hex parses "#rrggbb" or "#rrggbbaa" into an NRGBA color.
func Hex(s string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = a
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	return fromColorful(c, alpha), nil
}

// MustHex is like Hex but panics on malformed input. Meant for constants.
func MustHex(s string) color.NRGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func ToHex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha channel scaled by opacity in [0,1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = lerpChannel(0, c.A, opacity)
	return c
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
