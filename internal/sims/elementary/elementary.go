package elementary

import (
	"strconv"

	"spacewalk/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Code   core.Code
	// Random seeds the top row from the Lehmer generator instead of a single
	// centre cell.
	Random bool
}

// DefaultConfig returns the default configuration: Wolfram rule 110.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Code: core.MustCode(1, 2, "110")}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["states"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 && parsed <= core.MaxStateCount {
			c.Code.StateCount = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := core.ParseRule(v); err == nil {
			c.Code.Rule = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Random = parsed
		}
	}
	return c
}

// Elementary runs a first-order 1D automaton from a code artifact, projected
// vertically: the newest row is on top and history scrolls down.
type Elementary struct {
	w, h   int
	table  *core.RuleTable
	random bool
	cur    []uint8
	tmp    []uint8
}

// New creates an automaton with the given dimensions and code.
func New(w, h int, code core.Code) (*Elementary, error) {
	table, err := core.ParseCode(code)
	if err != nil {
		return nil, err
	}
	total := w * h
	return &Elementary{w: w, h: h, table: table, cur: make([]uint8, total), tmp: make([]uint8, w)}, nil
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []uint8 { return e.cur }

// Reset clears the grid and seeds the top row, either with a single active
// cell or with random states drawn from seed.
func (e *Elementary) Reset(seed int64) {
	for i := range e.cur {
		e.cur[i] = 0
	}
	if e.random {
		rng := core.NewLehmer(seed)
		for x := 0; x < e.w; x++ {
			e.cur[x] = rng.Uint8n(e.table.States())
		}
		return
	}
	center := e.w / 2
	if center >= 0 && center < e.w {
		e.cur[center] = 1
	}
}

// Step computes the next generation and scrolls history downwards.
func (e *Elementary) Step() {
	copy(e.tmp, e.cur[:e.w])
	copy(e.cur[e.w:], e.cur[:e.w*(e.h-1)])
	for x := 0; x < e.w; x++ {
		left := e.tmp[(x-1+e.w)%e.w]
		center := e.tmp[x]
		right := e.tmp[(x+1)%e.w]
		e.cur[x] = e.table.Next(left, center, right)
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		e, err := New(c.Width, c.Height, c.Code)
		if err != nil {
			e, _ = New(c.Width, c.Height, DefaultConfig().Code)
		}
		e.random = c.Random
		return e
	})
}
