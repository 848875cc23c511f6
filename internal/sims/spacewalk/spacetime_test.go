package spacewalk

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"spacewalk/internal/core"
)

// tableFromFunc encodes f as a code so tests exercise the real parser.
func tableFromFunc(t *testing.T, k int, f func(l, c, r int) int) *core.RuleTable {
	t.Helper()
	rule := new(big.Int)
	base := big.NewInt(int64(k))
	for idx := k*k*k - 1; idx >= 0; idx-- {
		l, c, r := idx/(k*k), idx/k%k, idx%k
		rule.Mul(rule, base)
		rule.Add(rule, big.NewInt(int64(f(l, c, r))))
	}
	table, err := core.ParseCode(core.Code{StateCount: k, Rule: rule})
	require.NoError(t, err)
	return table
}

func TestSpacetimeGenesis(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return 0 })
	st := NewSpacetime(5, table, core.NewLehmer(1), 2)

	require.Equal(t, 3, st.Len())
	require.Equal(t, 5, st.Width())
	s0, err := st.Slice(0)
	require.NoError(t, err)
	require.Equal(t, []uint8{2, 2, 2, 2, 2}, s0)

	// Lehmer(1) modulo 3: 1 0 0 1 1 | 2 2 2 2 2 | 1 2 ...
	s1, _ := st.Slice(1)
	s2, _ := st.Slice(2)
	require.Equal(t, []uint8{1, 0, 0, 1, 1}, s1)
	require.Equal(t, []uint8{2, 2, 2, 2, 2}, s2)
	require.Equal(t, 3, st.Len(), "reading genesis slices must not grow the spacetime")
}

func TestSpacetimeFillFixture(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return (l + 2*c + r) % 3 })
	st := NewSpacetime(5, table, core.NewLehmer(1), 0)

	for x, v := range []uint8{0, 1, 2, 0, 1} {
		require.NoError(t, st.Set(1, x, v))
	}
	for x, v := range []uint8{2, 2, 1, 0, 0} {
		require.NoError(t, st.Set(2, x, v))
	}

	st.Ensure(3)
	require.Equal(t, 4, st.Len())
	s3, err := st.Slice(3)
	require.NoError(t, err)

	// Edges are the 11th and 12th draws (1, 2). Interior, with a = slice 1
	// and b = slice 2, is table(b[x-1], a[x], b[x+1]):
	//   x=1: (2 + 2*1 + 1) % 3 = 2
	//   x=2: (2 + 2*2 + 0) % 3 = 0
	//   x=3: (1 + 2*0 + 0) % 3 = 1
	require.Equal(t, []uint8{1, 2, 0, 1, 2}, s3)
}

func TestSpacetimeEnsureGrowsInOrder(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return (l + c + r) % 3 })

	stepwise := NewSpacetime(9, table, core.NewLehmer(99), 0)
	for i := 0; i <= 40; i++ {
		stepwise.Ensure(i)
	}
	jump := NewSpacetime(9, table, core.NewLehmer(99), 0)
	jump.Ensure(40)
	jump.Ensure(12)

	require.Equal(t, 41, jump.Len())
	for i := 0; i <= 40; i++ {
		a, _ := stepwise.Slice(i)
		b, _ := jump.Slice(i)
		require.Equal(t, a, b, "slice %d", i)
		require.Len(t, b, 9)
		for _, v := range b {
			require.Less(t, v, uint8(3))
		}
	}
}

func TestSpacetimeBounds(t *testing.T) {
	table := tableFromFunc(t, 2, func(l, c, r int) int { return l ^ r })
	st := NewSpacetime(4, table, core.NewLehmer(5), 0)

	for _, pos := range [][2]int{{0, -1}, {0, 4}, {-1, 0}, {2, 100}} {
		_, err := st.At(pos[0], pos[1])
		require.ErrorIs(t, err, ErrOutOfRange, "t=%d x=%d", pos[0], pos[1])
	}
	require.ErrorIs(t, st.Set(3, 1, 0), ErrOutOfRange, "slice 3 is not materialised yet")
	require.ErrorIs(t, st.Set(0, 4, 0), ErrOutOfRange)
	_, err := st.Slice(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	v, err := st.At(10, 3)
	require.NoError(t, err)
	require.Less(t, v, uint8(2))
	require.Equal(t, 11, st.Len())
}

func TestSpacetimeWidthTwo(t *testing.T) {
	table := tableFromFunc(t, 3, func(l, c, r int) int { return 1 })
	st := NewSpacetime(2, table, core.NewLehmer(3), 0)
	st.Ensure(6)
	for i := 0; i <= 6; i++ {
		s, err := st.Slice(i)
		require.NoError(t, err)
		require.Len(t, s, 2)
	}
}
