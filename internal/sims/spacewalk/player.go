package spacewalk

import (
	"spacewalk/internal/core"
)

// Cell meanings after state remapping.
const (
	CellEmpty  uint8 = 0
	CellWall   uint8 = 1
	CellEnergy uint8 = 2
)

const (
	startEnergy = 3
	wallPenalty = 9
)

// Direction is one of the four moves available to the player.
type Direction int

const (
	Forward Direction = iota
	Left
	Right
	Backward
)

var directions = [...]Direction{Forward, Left, Right, Backward}

// Vec returns the (space, time) offset of the direction.
func (d Direction) Vec() (dx, dt int) {
	switch d {
	case Forward:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Backward:
		return 0, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Backward:
		return "backward"
	}
	return "unknown"
}

// StateMap translates raw automaton states into cell meanings and back.
type StateMap struct {
	forward []uint8
	inverse []uint8
}

// IdentityStateMap maps every state onto itself.
func IdentityStateMap(states int) StateMap {
	m := make([]uint8, states)
	for i := range m {
		m[i] = uint8(i)
	}
	sm, _ := NewStateMap(m)
	return sm
}

// NewStateMap builds a mapping from a permutation of [0, len(m)).
func NewStateMap(m []uint8) (StateMap, error) {
	inv := make([]uint8, len(m))
	seen := make([]bool, len(m))
	for raw, mapped := range m {
		if int(mapped) >= len(m) || seen[mapped] {
			return StateMap{}, errInvalidStateMap(m)
		}
		seen[mapped] = true
		inv[mapped] = uint8(raw)
	}
	return StateMap{forward: append([]uint8(nil), m...), inverse: inv}, nil
}

// Map converts a raw state into its meaning.
func (m StateMap) Map(raw uint8) uint8 { return m.forward[raw] }

// Raw converts a meaning back into the raw state that carries it.
func (m StateMap) Raw(mapped uint8) uint8 { return m.inverse[mapped] }

// Player walks through a Spacetime, one move per tick.
type Player struct {
	world  *Spacetime
	states StateMap
	rng    *core.Lehmer

	x, t            int
	energy          int
	ticks           int
	maxDepth        int
	horizon         int
	depthLeftBehind int
	gameOver        bool
	last            Direction
}

// NewPlayer places a player in the middle of slice 0.
func NewPlayer(world *Spacetime, states StateMap, rng *core.Lehmer, depthLeftBehind int) *Player {
	return &Player{
		world:           world,
		states:          states,
		rng:             rng,
		x:               world.Width() / 2,
		energy:          startEnergy,
		depthLeftBehind: depthLeftBehind,
	}
}

// Position returns the player's (space, time) coordinates.
func (p *Player) Position() (x, t int) { return p.x, p.t }

// Energy returns the current energy. It may be negative.
func (p *Player) Energy() int { return p.energy }

// Horizon returns the earliest time slice the player may still enter.
func (p *Player) Horizon() int { return p.horizon }

// MaxDepth returns the furthest time slice reached so far.
func (p *Player) MaxDepth() int { return p.maxDepth }

// Ticks returns the number of ticks taken while the game was running.
func (p *Player) Ticks() int { return p.ticks }

// GameOver reports whether the player ran out of moves.
func (p *Player) GameOver() bool { return p.gameOver }

// LastDirection returns the most recent move.
func (p *Player) LastDirection() Direction { return p.last }

// cell returns the mapped state at a coordinate that passed the bounds checks.
func (p *Player) cell(t, x int) uint8 {
	raw, err := p.world.At(t, x)
	if err != nil {
		// Candidates are bounds-checked before lookup.
		panic(err)
	}
	return p.states.Map(raw)
}

// Options lists the passable directions from the current position.
func (p *Player) Options() []Direction {
	var out []Direction
	for _, d := range directions {
		dx, dt := d.Vec()
		nx, nt := p.x+dx, p.t+dt
		if nt < p.horizon {
			continue
		}
		if nx < 1 || nx >= p.world.Width()-1 {
			continue
		}
		switch p.cell(nt, nx) {
		case CellEmpty, CellEnergy:
			out = append(out, d)
		}
	}
	return out
}

// Tick makes one move. It returns false once no direction is passable; the
// game is then over and later calls do nothing.
func (p *Player) Tick() bool {
	if p.gameOver {
		return false
	}
	p.ticks++

	options := p.Options()
	if len(options) == 0 {
		p.gameOver = true
		return false
	}

	d := options[p.rng.Intn(len(options))]
	dx, dt := d.Vec()
	p.x += dx
	p.t += dt
	p.last = d

	switch p.cell(p.t, p.x) {
	case CellEnergy:
		p.energy++
	case CellWall:
		p.energy -= wallPenalty
	}

	// Later slices derive from the current one, so grow them before erasing.
	p.world.Ensure(p.t + 2)
	if err := p.world.Set(p.t, p.x, p.states.Raw(CellEmpty)); err != nil {
		panic(err)
	}

	if p.t > p.maxDepth {
		p.maxDepth = p.t
	}
	p.horizon = max(0, p.maxDepth-p.depthLeftBehind)
	return true
}
