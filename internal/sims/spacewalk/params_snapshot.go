package spacewalk

import (
	"strconv"
	"strings"

	"spacewalk/internal/core"
)

// Parameters publishes the configuration and live player values.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	status := w.Status()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				int64Param("seed", "Seed", cfg.Seed),
				intParam("w", "Space size", cfg.SpaceSize),
				intParam("h", "Viewport height", cfg.ViewportHeight),
				intParam("depth_left_behind", "Depth left behind", cfg.DepthLeftBehind),
				intParam("ticks_per_step", "Ticks per step", cfg.TicksPerStep),
			},
		},
		{
			Name: "Code",
			Params: []core.Parameter{
				intParam("states", "States", cfg.Code.StateCount),
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: cfg.Code.RuleString()},
				intParam("start_fill", "Start fill state", int(cfg.StartFillState)),
				{Key: "state_map", Label: "State map", Type: core.ParamTypeString, Value: formatStateMap(cfg.StateMap)},
			},
		},
		{
			Name: "Player",
			Params: []core.Parameter{
				intParam("energy", "Energy", status.Energy),
				intParam("depth", "Depth", status.Depth),
				intParam("max_depth", "Max depth", status.MaxDepth),
				intParam("ticks", "Ticks", status.Ticks),
				{Key: "game_over", Label: "Game over", Type: core.ParamTypeBool, Value: strconv.FormatBool(status.GameOver)},
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func formatStateMap(m []uint8) string {
	if m == nil {
		return "identity"
	}
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}
