package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// stampSquare paints a (2r+1)-wide square centred on (cx, cy), clipped to the
// w*h image held in buf.
func stampSquare(buf []byte, w, h, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			base := (y*w + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// Frame converts a cell grid into an RGBA buffer, optionally stamping a
// marker. It backs both the ebiten painter and headless snapshots.
type Frame struct {
	W, H int
	Pix  []byte
}

// NewFrame allocates a frame for a w*h grid.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, 4*w*h)}
}

// Paint fills the frame from cells. It does nothing when the sizes disagree.
func (f *Frame) Paint(cells []uint8, palette []color.RGBA) bool {
	if len(cells) != f.W*f.H {
		return false
	}
	fillPaletteRGBA(f.Pix, cells, palette)
	return true
}

// Mark stamps a square marker of half-width r at (x, y).
func (f *Frame) Mark(x, y, r int, col color.RGBA) {
	stampSquare(f.Pix, f.W, f.H, x, y, r, col)
}
