package spacewalk

import (
	"errors"
	"fmt"

	"spacewalk/internal/configs"
	"spacewalk/internal/core"
)

// PresetSchema is the CUE schema accepted by LoadPreset. Every field is
// optional; missing ones keep the base configuration.
const PresetSchema = `
#Code: {
	v?:          int
	stateCount?: int & >=2 & <=64
	rule?:       (int & >=0) | (string & =~"^[0-9]+$")
}
#Spacewalk: {
	seed?:            int
	spaceSize?:       int & >=2
	code?:            #Code
	startFillState?:  int & >=0
	depthLeftBehind?: int & >=0
	viewportHeight?:  int & >0
	ticksPerStep?:    int & >0
	stateMap?: [...int & >=0]
}
spacewalk?: #Spacewalk
`

// NewPresetLoader returns a loader that validates files against PresetSchema.
func NewPresetLoader(paths ...string) configs.Loader {
	return configs.NewLoader(paths, PresetSchema)
}

// LoadPreset overlays the spacewalk section of the loaded files onto base.
func LoadPreset(loader configs.Loader, base Config) (Config, error) {
	if err := loader.Err(); err != nil {
		return base, fmt.Errorf("load preset: %w", err)
	}
	c := base

	var startFill int
	var stateMap []int
	fields := []struct {
		path   string
		target any
	}{
		{"spacewalk.seed", &c.Seed},
		{"spacewalk.spaceSize", &c.SpaceSize},
		{"spacewalk.code.v", &c.Code.Version},
		{"spacewalk.code.stateCount", &c.Code.StateCount},
		{"spacewalk.startFillState", &startFill},
		{"spacewalk.depthLeftBehind", &c.DepthLeftBehind},
		{"spacewalk.viewportHeight", &c.ViewportHeight},
		{"spacewalk.ticksPerStep", &c.TicksPerStep},
		{"spacewalk.stateMap", &stateMap},
	}
	for _, f := range fields {
		if err := optional(loader.AssignFirst(f.path, f.target)); err != nil {
			return base, fmt.Errorf("preset %s: %w", f.path, err)
		}
	}

	rule, err := loader.BigInt("spacewalk.code.rule")
	switch {
	case err == nil:
		c.Code.Rule = rule
	case !errors.Is(err, configs.ErrValueNotFound):
		return base, fmt.Errorf("preset spacewalk.code.rule: %w", err)
	}

	if _, err := loader.First("spacewalk.startFillState"); err == nil {
		if startFill >= c.Code.StateCount {
			return base, fmt.Errorf("%w: start fill state %d with %d states", ErrInvalidOptions, startFill, c.Code.StateCount)
		}
		c.StartFillState = uint8(startFill)
	}
	if stateMap != nil {
		m := make([]uint8, len(stateMap))
		for i, v := range stateMap {
			if v >= core.MaxStateCount {
				return base, errInvalidStateMap(m)
			}
			m[i] = uint8(v)
		}
		if _, err := NewStateMap(m); err != nil {
			return base, err
		}
		c.StateMap = m
	}
	if _, err := core.ParseCode(c.Code); err != nil {
		return base, err
	}
	return c, nil
}

func optional(err error) error {
	if errors.Is(err, configs.ErrValueNotFound) {
		return nil
	}
	return err
}
