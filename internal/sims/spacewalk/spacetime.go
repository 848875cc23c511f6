package spacewalk

import (
	"errors"
	"fmt"

	"spacewalk/internal/core"
)

// ErrOutOfRange reports a cell coordinate outside the spacetime.
var ErrOutOfRange = errors.New("cell out of range")

// genesisSlices is the number of slices seeded directly from randomness.
const genesisSlices = 3

// Spacetime is a lazily grown stack of fixed-width time slices. Slices past
// the genesis rows are derived from the two slices before them and never
// regenerated.
//
// Spacetime is not safe for concurrent use. Its generator advances in slice
// order, so concurrent or out-of-order growth would change the world rather
// than fail. Run serialises all access behind one mutex.
type Spacetime struct {
	width  int
	states int
	table  *core.RuleTable
	rng    *core.Lehmer
	slices [][]uint8
}

// NewSpacetime seeds the genesis slices: slice 0 filled with fill, slices 1
// and 2 drawn cell by cell from rng.
func NewSpacetime(width int, table *core.RuleTable, rng *core.Lehmer, fill uint8) *Spacetime {
	s := &Spacetime{
		width:  width,
		states: table.States(),
		table:  table,
		rng:    rng,
		slices: make([][]uint8, 0, 64),
	}
	first := make([]uint8, width)
	for x := range first {
		first[x] = fill
	}
	s.slices = append(s.slices, first)
	for i := 1; i < genesisSlices; i++ {
		slice := make([]uint8, width)
		for x := range slice {
			slice[x] = rng.Uint8n(s.states)
		}
		s.slices = append(s.slices, slice)
	}
	return s
}

// Width returns the number of cells per slice.
func (s *Spacetime) Width() int { return s.width }

// Len returns the number of materialised slices.
func (s *Spacetime) Len() int { return len(s.slices) }

// Ensure materialises every slice up to and including t.
func (s *Spacetime) Ensure(t int) {
	for t >= len(s.slices) {
		slice := make([]uint8, s.width)
		slice[0] = s.rng.Uint8n(s.states)
		slice[s.width-1] = s.rng.Uint8n(s.states)
		s.slices = append(s.slices, slice)
		n := len(s.slices)
		fillSlice(s.table, s.slices[n-3], s.slices[n-2], slice)
	}
}

// fillSlice computes the interior of next from its light cone: the left and
// right neighbours in prev and the centre cell two steps back in older.
func fillSlice(table *core.RuleTable, older, prev, next []uint8) {
	for x := 1; x < len(next)-1; x++ {
		next[x] = table.Next(prev[x-1], older[x], prev[x+1])
	}
}

// At returns the raw state at (t, x), growing the spacetime as needed.
func (s *Spacetime) At(t, x int) (uint8, error) {
	if err := s.check(t, x); err != nil {
		return 0, err
	}
	s.Ensure(t)
	return s.slices[t][x], nil
}

// Set overwrites a cell in an already materialised slice.
func (s *Spacetime) Set(t, x int, v uint8) error {
	if err := s.check(t, x); err != nil {
		return err
	}
	if t >= len(s.slices) {
		return fmt.Errorf("%w: slice %d not materialised (have %d)", ErrOutOfRange, t, len(s.slices))
	}
	s.slices[t][x] = v
	return nil
}

// Slice returns a copy of slice t, growing the spacetime as needed.
func (s *Spacetime) Slice(t int) ([]uint8, error) {
	if t < 0 {
		return nil, fmt.Errorf("%w: t=%d", ErrOutOfRange, t)
	}
	s.Ensure(t)
	return append([]uint8(nil), s.slices[t]...), nil
}

func (s *Spacetime) check(t, x int) error {
	if x < 0 || x >= s.width || t < 0 {
		return fmt.Errorf("%w: (t=%d, x=%d) with width %d", ErrOutOfRange, t, x, s.width)
	}
	return nil
}
