package spacewalk

import (
	"strconv"
	"strings"

	"spacewalk/internal/core"
)

// DefaultRule is the three-state rule the walk was tuned with.
const DefaultRule = "299338136518556439977845337106716710210"

// Config controls the spacewalk world and how it is shown.
type Config struct {
	// Seed derives the two generators: spacetime uses Seed+1, ticks Seed+2.
	Seed int64

	SpaceSize       int
	Code            core.Code
	StartFillState  uint8
	DepthLeftBehind int
	StateMap        []uint8

	// ViewportHeight is the number of slices shown from the horizon down.
	ViewportHeight int
	// TicksPerStep is the number of player ticks per Step call.
	TicksPerStep int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed:            4242,
		SpaceSize:       91,
		Code:            core.MustCode(1, 3, DefaultRule),
		StartFillState:  0,
		DepthLeftBehind: 200,
		ViewportHeight:  300,
		TicksPerStep:    1000,
	}
}

// Options returns the run options for the configured seed.
func (c Config) Options() Options {
	return c.OptionsForSeed(c.Seed)
}

// OptionsForSeed returns run options with both generators derived from seed.
func (c Config) OptionsForSeed(seed int64) Options {
	return Options{
		SpacetimeSeed:   seed + 1,
		TickSeed:        seed + 2,
		SpaceSize:       c.SpaceSize,
		Code:            c.Code,
		StartFillState:  c.StartFillState,
		DepthLeftBehind: c.DepthLeftBehind,
		StateMap:        c.StateMap,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 {
			c.SpaceSize = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ViewportHeight = parsed
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
	if v, ok := cfg["start_fill"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < c.Code.StateCount {
			c.StartFillState = uint8(parsed)
		}
	}
	if v, ok := cfg["depth_left_behind"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.DepthLeftBehind = parsed
		}
	}
	if v, ok := cfg["ticks_per_step"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TicksPerStep = parsed
		}
	}
	if v, ok := cfg["state_map"]; ok {
		if parsed, ok := parseStateMap(v); ok && len(parsed) == c.Code.StateCount {
			c.StateMap = parsed
		}
	}
	if int(c.StartFillState) >= c.Code.StateCount {
		c.StartFillState = 0
	}
	if c.StateMap != nil && len(c.StateMap) != c.Code.StateCount {
		c.StateMap = nil
	}
	return c
}

func parseStateMap(v string) ([]uint8, bool) {
	parts := strings.Split(v, ",")
	out := make([]uint8, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n >= core.MaxStateCount {
			return nil, false
		}
		out = append(out, uint8(n))
	}
	if _, err := NewStateMap(out); err != nil {
		return nil, false
	}
	return out, true
}
