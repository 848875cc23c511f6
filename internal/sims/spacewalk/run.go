package spacewalk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"spacewalk/internal/core"
)

// ErrInvalidOptions reports run options that cannot describe a world.
var ErrInvalidOptions = errors.New("invalid run options")

func errInvalidStateMap(m []uint8) error {
	return fmt.Errorf("%w: state map %v is not a permutation", ErrInvalidOptions, m)
}

// Options configures a single run.
type Options struct {
	SpacetimeSeed   int64
	TickSeed        int64
	SpaceSize       int
	Code            core.Code
	StartFillState  uint8
	DepthLeftBehind int
	// StateMap optionally remaps raw states before they are interpreted.
	// Nil means identity.
	StateMap []uint8
	Logger   *slog.Logger
}

// Run couples a Spacetime with the player walking through it. All methods
// are safe for concurrent use; one mutex covers the whole world since slice
// generation is inherently sequential.
type Run struct {
	mu     sync.Mutex
	world  *Spacetime
	player *Player
	states StateMap
	log    *slog.Logger
}

// NewRun validates opts and builds the genesis slices.
func NewRun(opts Options) (*Run, error) {
	table, err := core.ParseCode(opts.Code)
	if err != nil {
		return nil, err
	}
	k := table.States()
	if opts.SpaceSize < 2 {
		return nil, fmt.Errorf("%w: space size %d, need at least 2", ErrInvalidOptions, opts.SpaceSize)
	}
	if opts.DepthLeftBehind < 0 {
		return nil, fmt.Errorf("%w: negative depth left behind %d", ErrInvalidOptions, opts.DepthLeftBehind)
	}
	if int(opts.StartFillState) >= k {
		return nil, fmt.Errorf("%w: start fill state %d with %d states", ErrInvalidOptions, opts.StartFillState, k)
	}

	states := IdentityStateMap(k)
	if opts.StateMap != nil {
		if len(opts.StateMap) != k {
			return nil, fmt.Errorf("%w: state map has %d entries, code has %d states", ErrInvalidOptions, len(opts.StateMap), k)
		}
		if states, err = NewStateMap(opts.StateMap); err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	world := NewSpacetime(opts.SpaceSize, table, core.NewLehmer(opts.SpacetimeSeed), states.Raw(opts.StartFillState))
	r := &Run{
		world:  world,
		player: NewPlayer(world, states, core.NewLehmer(opts.TickSeed), opts.DepthLeftBehind),
		states: states,
		log:    logger,
	}
	return r, nil
}

// Tick advances the player by one move. It returns false when the game is over.
func (r *Run) Tick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tick()
}

func (r *Run) tick() bool {
	if r.player.GameOver() {
		return false
	}
	before := r.world.Len()
	if !r.player.Tick() {
		x, t := r.player.Position()
		r.log.Info("game over: no possible directions",
			"tick", r.player.Ticks(),
			"x", x,
			"t", t,
			"energy", r.player.Energy(),
			"depth", r.player.Horizon(),
		)
		return false
	}
	if after := r.world.Len(); after != before && r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug("spacetime grown", "slices", after, "added", after-before)
	}
	return true
}

// TickN runs up to n ticks and returns how many advanced the player.
func (r *Run) TickN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	done := 0
	for done < n && r.tick() {
		done++
	}
	return done
}

// PlayerEnergy returns the player's energy.
func (r *Run) PlayerEnergy() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.Energy()
}

// Depth returns the current horizon, the first slice still visible.
func (r *Run) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.Horizon()
}

// MaxDepth returns the furthest slice the player reached.
func (r *Run) MaxDepth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.MaxDepth()
}

// PlayerPosition returns the player's (x, t) coordinates.
func (r *Run) PlayerPosition() (x, t int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.Position()
}

// TickCount returns the number of ticks taken before the game ended.
func (r *Run) TickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.Ticks()
}

// GameOver reports whether the run has reached its terminal state.
func (r *Run) GameOver() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player.GameOver()
}

// SpaceSize returns the width of every slice.
func (r *Run) SpaceSize() int { return r.world.Width() }

// Len returns the number of materialised slices.
func (r *Run) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Len()
}

// CellAt returns the remapped state at (t, x).
func (r *Run) CellAt(t, x int) (uint8, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := r.world.At(t, x)
	if err != nil {
		return 0, err
	}
	return r.states.Map(raw), nil
}

// Snapshot is a consistent copy of the player state.
type Snapshot struct {
	X, T     int
	Energy   int
	Depth    int
	MaxDepth int
	Ticks    int
	GameOver bool
}

// Snapshot reads all player values under a single lock.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, t := r.player.Position()
	return Snapshot{
		X:        x,
		T:        t,
		Energy:   r.player.Energy(),
		Depth:    r.player.Horizon(),
		MaxDepth: r.player.MaxDepth(),
		Ticks:    r.player.Ticks(),
		GameOver: r.player.GameOver(),
	}
}

// Viewport renders rows [from, from+grid.H) into grid as remapped states.
func (r *Run) Viewport(grid *core.ByteGrid, from int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if from < 0 {
		from = 0
	}
	r.world.Ensure(from + grid.H - 1)
	w := min(grid.W, r.world.Width())
	for y := 0; y < grid.H; y++ {
		src := r.world.slices[from+y]
		row := grid.Row(y)
		for x := 0; x < w; x++ {
			row[x] = r.states.Map(src[x])
		}
	}
}
