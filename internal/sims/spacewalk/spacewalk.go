package spacewalk

import (
	"log/slog"

	"spacewalk/internal/core"
)

// World adapts a Run to the core.Sim contract: every Step ticks the player
// TicksPerStep times and Cells shows the viewport starting at the horizon.
type World struct {
	cfg  Config
	run  *Run
	view *core.ByteGrid
	log  *slog.Logger
	err  error
}

// New returns a World using the default configuration.
func New() *World {
	return NewWithConfig(DefaultConfig(), nil)
}

// NewWithConfig returns a World configured from cfg. A nil logger discards.
func NewWithConfig(cfg Config, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &World{
		cfg:  cfg,
		view: core.NewByteGrid(cfg.SpaceSize, cfg.ViewportHeight),
		log:  logger,
	}
	w.Reset(cfg.Seed)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "spacewalk" }

// Size reports the viewport dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.view.W, H: w.view.H} }

// Cells exposes the viewport buffer.
func (w *World) Cells() []uint8 { return w.view.Cells() }

// Run exposes the underlying run, nil if the configuration was rejected.
func (w *World) Run() *Run { return w.run }

// Err returns the configuration error from the last Reset, if any.
func (w *World) Err() error { return w.err }

// Reset rebuilds the run with both generators derived from seed.
func (w *World) Reset(seed int64) {
	opts := w.cfg.OptionsForSeed(seed)
	opts.Logger = w.log.With("seed", seed)
	run, err := NewRun(opts)
	if err != nil {
		w.log.Error("spacewalk reset", "seed", seed, "error", err)
		w.run, w.err = nil, err
		w.view.Clear()
		return
	}
	w.cfg.Seed = seed
	w.run, w.err = run, nil
	w.refresh()
}

// Step ticks the player and redraws the viewport.
func (w *World) Step() {
	if w.run == nil {
		return
	}
	w.run.TickN(w.cfg.TicksPerStep)
	w.refresh()
}

func (w *World) refresh() {
	w.run.Viewport(w.view, w.run.Depth())
}

// Player returns the player's position relative to the viewport.
func (w *World) Player() (x, y int, ok bool) {
	if w.run == nil {
		return 0, 0, false
	}
	snap := w.run.Snapshot()
	return snap.X, snap.T - snap.Depth, true
}

// GameOver reports whether the player is stuck or the world failed to build.
func (w *World) GameOver() bool {
	return w.run == nil || w.run.GameOver()
}

// Status returns the player snapshot shown on the HUD.
func (w *World) Status() Snapshot {
	if w.run == nil {
		return Snapshot{GameOver: true}
	}
	return w.run.Snapshot()
}

func init() {
	core.Register("spacewalk", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg), slog.Default())
	})
}
