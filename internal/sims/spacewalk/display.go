package spacewalk

import "image/color"

var (
	palette = []color.RGBA{
		{R: 0x80, G: 0x00, B: 0xff, A: 0xff}, // empty
		{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // wall
		{R: 0x80, G: 0xff, B: 0x00, A: 0xff}, // energy
	}
	// PlayerColor marks the player on top of the viewport.
	PlayerColor = color.RGBA{R: 0xff, A: 0xff}
)

// PlayerMarkerRadius is the half-width of the square drawn at the player.
const PlayerMarkerRadius = 2

// Palette exposes the colors for each cell meaning. States past the end of the
// palette render with a grey ramp.
func (w *World) Palette() []color.RGBA {
	k := w.cfg.Code.StateCount
	if k <= len(palette) {
		return palette
	}
	out := append([]color.RGBA(nil), palette...)
	for i := len(palette); i < k; i++ {
		v := uint8(64 + (i-len(palette))*160/max(1, k-len(palette)))
		out = append(out, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	return out
}
