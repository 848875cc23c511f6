package spacewalk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spacewalk/internal/core"
)

func TestLoadPreset(t *testing.T) {
	cfg, err := LoadPreset(NewPresetLoader("testdata/walk.cue"), DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, 33, cfg.SpaceSize)
	require.Equal(t, 50, cfg.DepthLeftBehind)
	require.Equal(t, 1, cfg.Code.Version)
	require.Equal(t, DefaultRule, cfg.Code.RuleString())
	require.Equal(t, []uint8{0, 2, 1}, cfg.StateMap)
	require.Equal(t, DefaultConfig().ViewportHeight, cfg.ViewportHeight, "unset fields keep the base value")

	run, err := NewRun(cfg.Options())
	require.NoError(t, err)
	require.True(t, run.Tick())
}

func TestLoadPresetQuotedRule(t *testing.T) {
	cfg, err := LoadPreset(NewPresetLoader("testdata/quoted.cue"), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "2:110", cfg.Code.String())

	table, err := core.ParseCode(cfg.Code)
	require.NoError(t, err)
	require.Equal(t, 8, table.Len())
}

func TestLoadPresetRejectsUnknownFields(t *testing.T) {
	base := DefaultConfig()
	cfg, err := LoadPreset(NewPresetLoader("testdata/unknown.cue"), base)
	require.Error(t, err)
	require.Equal(t, base.Seed, cfg.Seed)
}
