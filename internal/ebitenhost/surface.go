package ebitenhost

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/jmylchreest/imtricks/internal/toast"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// solid returns a 1x1 white source image for DrawTriangles.
func solid() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Surface draws toasts and scene shapes onto an ebiten image in pixels.
type Surface struct {
	dst  *ebiten.Image
	face font.Face

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface creates a surface using the built-in 7x13 bitmap face.
func NewSurface() *Surface {
	return &Surface{face: basicfont.Face7x13}
}

// Target sets the image the next draw calls write to.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// FillRect implements toast.Surface.
func (s *Surface) FillRect(lo, hi toast.Point, c color.NRGBA, radius float64) {
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if w <= 0 || h <= 0 {
		return
	}
	r := float32(min(radius, min(w, h)/2))
	if r <= 0 {
		vector.DrawFilledRect(s.dst, float32(lo.X), float32(lo.Y), float32(w), float32(h), c, false)
		return
	}

	x0, y0, x1, y1 := float32(lo.X), float32(lo.Y), float32(hi.X), float32(hi.Y)
	var p vector.Path
	p.MoveTo(x0+r, y0)
	p.LineTo(x1-r, y0)
	p.ArcTo(x1, y0, x1, y0+r, r)
	p.LineTo(x1, y1-r)
	p.ArcTo(x1, y1, x1-r, y1, r)
	p.LineTo(x0+r, y1)
	p.ArcTo(x0, y1, x0, y1-r, r)
	p.LineTo(x0, y0+r)
	p.ArcTo(x0, y0, x0+r, y0, r)
	p.Close()

	s.vertices, s.indices = p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	cr, cg, cb, ca := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = cr
		s.vertices[i].ColorG = cg
		s.vertices[i].ColorB = cb
		s.vertices[i].ColorA = ca
	}
	s.dst.DrawTriangles(s.vertices, s.indices, solid(), &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.EvenOdd,
		AntiAlias: true,
	})
}

// DrawText implements toast.Surface. pos is the top-left of the text box.
func (s *Surface) DrawText(pos toast.Point, c color.NRGBA, str string) {
	ascent := s.face.Metrics().Ascent.Ceil()
	text.Draw(s.dst, str, s.face, int(pos.X), int(pos.Y)+ascent, c)
}

// MeasureText implements toast.Surface. The height is the face's line
// height so banners centre text consistently.
func (s *Surface) MeasureText(str string) toast.Size {
	b := text.BoundString(s.face, str)
	return toast.Size{
		W: float64(b.Dx()),
		H: float64(s.face.Metrics().Height.Ceil()),
	}
}
