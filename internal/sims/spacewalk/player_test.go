package spacewalk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spacewalk/internal/core"
)

func TestDirectionVectors(t *testing.T) {
	cases := map[Direction][2]int{
		Forward:  {0, 1},
		Left:     {-1, 0},
		Right:    {1, 0},
		Backward: {0, -1},
	}
	for d, want := range cases {
		dx, dt := d.Vec()
		require.Equal(t, want, [2]int{dx, dt}, d.String())
	}
	require.Equal(t, "unknown", Direction(9).String())
}

func TestStateMap(t *testing.T) {
	m, err := NewStateMap([]uint8{2, 0, 1})
	require.NoError(t, err)
	for raw := uint8(0); raw < 3; raw++ {
		require.Equal(t, raw, m.Raw(m.Map(raw)))
	}
	require.Equal(t, uint8(1), m.Raw(CellEmpty))

	_, err = NewStateMap([]uint8{0, 0, 1})
	require.ErrorIs(t, err, ErrInvalidOptions)
	_, err = NewStateMap([]uint8{0, 3, 1})
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestPlayerStartsCentred(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return 0 })
	world := NewSpacetime(7, table, core.NewLehmer(1), 0)
	p := NewPlayer(world, IdentityStateMap(3), core.NewLehmer(2), 10)

	x, tt := p.Position()
	require.Equal(t, 3, x)
	require.Zero(t, tt)
	require.Equal(t, 3, p.Energy())
	require.Zero(t, p.Horizon())
	require.False(t, p.GameOver())
}

func TestPlayerTrappedEndsGame(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return int(CellWall) })
	world := NewSpacetime(3, table, core.NewLehmer(1), 0)
	require.NoError(t, world.Set(1, 1, CellWall))
	p := NewPlayer(world, IdentityStateMap(3), core.NewLehmer(2), 0)

	require.Empty(t, p.Options())
	require.False(t, p.Tick())
	require.True(t, p.GameOver())
	require.Equal(t, 1, p.Ticks())

	x, tt := p.Position()
	require.Equal(t, [2]int{1, 0}, [2]int{x, tt}, "a failed tick must not move the player")

	require.False(t, p.Tick())
	require.Equal(t, 1, p.Ticks(), "ticks after game over are ignored")
}

func TestPlayerCollectsEnergyAndErases(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return int(CellWall) })
	world := NewSpacetime(3, table, core.NewLehmer(1), 0)
	require.NoError(t, world.Set(1, 1, CellEnergy))
	p := NewPlayer(world, IdentityStateMap(3), core.NewLehmer(2), 0)

	require.Equal(t, []Direction{Forward}, p.Options())
	require.True(t, p.Tick())
	require.Equal(t, Forward, p.LastDirection())
	require.Equal(t, 4, p.Energy())

	x, tt := p.Position()
	require.Equal(t, [2]int{1, 1}, [2]int{x, tt})
	require.GreaterOrEqual(t, world.Len(), 4, "slice t+2 must exist before erasing")

	v, err := world.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, CellEmpty, v)
	require.Equal(t, 1, p.MaxDepth())
	require.Equal(t, 1, p.Horizon())
}

func TestPlayerHorizonKeepsDepthLeftBehind(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return int(CellEmpty) })
	world := NewSpacetime(3, table, core.NewLehmer(1), 0)
	p := NewPlayer(world, IdentityStateMap(3), core.NewLehmer(2), 2)
	for i := 1; i <= 2; i++ {
		require.NoError(t, world.Set(i, 1, CellEmpty))
	}

	prev := 0
	for i := 0; i < 200; i++ {
		require.True(t, p.Tick(), "an all-empty corridor never traps the player")
		h := p.Horizon()
		require.GreaterOrEqual(t, h, prev)
		require.Equal(t, max(0, p.MaxDepth()-2), h)
		_, tt := p.Position()
		require.GreaterOrEqual(t, tt, h)
		prev = h
	}
}

func TestPlayerErasesWithStateMap(t *testing.T) {
	// Raw 1 means empty, raw 0 means wall.
	states, err := NewStateMap([]uint8{1, 0, 2})
	require.NoError(t, err)
	table := tableFromFunc(t, 3, func(l, c, r int) int { return 0 })
	world := NewSpacetime(3, table, core.NewLehmer(1), states.Raw(CellEmpty))
	require.NoError(t, world.Set(1, 1, 2))
	p := NewPlayer(world, states, core.NewLehmer(2), 0)

	require.True(t, p.Tick())
	v, err := world.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, uint8(1), v, "erasure writes the raw state that maps to empty")
}
