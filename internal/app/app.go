//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"spacewalk/internal/core"
	"spacewalk/internal/render"
	"spacewalk/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type playerProvider interface {
	Player() (x, y int, ok bool)
}

type gameOverProvider interface {
	GameOver() bool
}

var monochrome = []color.RGBA{
	{A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	log     *slog.Logger

	marker color.RGBA
	radius int

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *slog.Logger) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		log:     logger,
		marker:  color.RGBA{R: 0xff, A: 0xff},
		radius:  2,
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
}

// SetMarker changes the color and half-width of the player marker.
func (g *Game) SetMarker(col color.RGBA, radius int) {
	g.marker = col
	g.radius = radius
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.log.Info("reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano() & 0x7fffffff)
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}

	switch {
	case g.over():
		g.hud.SetStatus("game over  [R] replay  [S] new seed")
	case g.paused:
		g.hud.SetStatus("paused  [N] step  [Space] resume")
	default:
		g.hud.SetStatus("")
	}
	g.hud.Update()
	return nil
}

func (g *Game) over() bool {
	if p, ok := g.sim.(gameOverProvider); ok {
		return p.GameOver()
	}
	return false
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	palette := monochrome
	if p, ok := g.sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	var markers []render.Marker
	if p, ok := g.sim.(playerProvider); ok {
		if x, y, visible := p.Player(); visible {
			markers = append(markers, render.Marker{X: x, Y: y, Radius: g.radius, Color: g.marker})
		}
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale, markers...)
	s := g.sim.Size()
	g.hud.Draw(screen, s.W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
