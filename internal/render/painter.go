//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-mapped cell data into a single ebiten image.
type GridPainter struct {
	frame *Frame
	img   *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{frame: NewFrame(w, h), img: ebiten.NewImage(w, h)}
}

// Marker is an optional square drawn over the cells, in grid coordinates.
type Marker struct {
	X, Y, Radius int
	Color        color.RGBA
}

// Blit paints the cells and markers and draws the result scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int, markers ...Marker) {
	if !gp.frame.Paint(cells, palette) {
		return
	}
	for _, m := range markers {
		gp.frame.Mark(m.X, m.Y, m.Radius, m.Color)
	}
	gp.img.WritePixels(gp.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.frame.W, gp.frame.H }
