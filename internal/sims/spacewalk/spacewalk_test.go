package spacewalk

import (
	"slices"
	"testing"

	"spacewalk/internal/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.SpaceSize = 31
	cfg.ViewportHeight = 40
	cfg.DepthLeftBehind = 10
	cfg.TicksPerStep = 50
	return cfg
}

func TestWorldRegistered(t *testing.T) {
	factory, ok := core.Sims()["spacewalk"]
	if !ok {
		t.Fatal("spacewalk should register itself")
	}
	sim := factory(map[string]string{"w": "15", "h": "20"})
	if got := sim.Size(); got.W != 15 || got.H != 20 {
		t.Fatalf("unexpected size %+v", got)
	}
	if sim.Name() != "spacewalk" {
		t.Fatalf("unexpected name %q", sim.Name())
	}
}

func TestWorldResetDeterministic(t *testing.T) {
	world := NewWithConfig(smallConfig(), nil)
	world.Step()
	world.Step()
	first := append([]uint8(nil), world.Cells()...)
	firstStatus := world.Status()

	world.Reset(smallConfig().Seed)
	world.Step()
	world.Step()
	if !slices.Equal(first, world.Cells()) {
		t.Fatal("Reset with the same seed should reproduce the viewport")
	}
	if firstStatus != world.Status() {
		t.Fatalf("status mismatch: %+v vs %+v", firstStatus, world.Status())
	}

	world.Reset(777)
	world.Step()
	if slices.Equal(first, world.Cells()) {
		t.Fatal("different seeds should produce different viewports")
	}
}

func TestWorldViewportFollowsHorizon(t *testing.T) {
	world := NewWithConfig(smallConfig(), nil)
	for i := 0; i < 20; i++ {
		world.Step()
	}
	status := world.Status()
	run := world.Run()
	size := world.Size()
	cells := world.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			v, err := run.CellAt(status.Depth+y, x)
			if err != nil {
				t.Fatal(err)
			}
			if cells[y*size.W+x] != v {
				t.Fatalf("viewport (%d,%d) = %d, run has %d", x, y, cells[y*size.W+x], v)
			}
		}
	}

	px, py, ok := world.Player()
	if !ok || px != status.X || py != status.T-status.Depth {
		t.Fatalf("player marker at (%d,%d), status %+v", px, py, status)
	}
}

func TestWorldRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.SpaceSize = 1
	world := NewWithConfig(cfg, nil)
	if world.Err() == nil || world.Run() != nil {
		t.Fatal("space size 1 should be rejected")
	}
	world.Step()
	if !world.Status().GameOver {
		t.Fatal("a rejected world reports game over")
	}
	if !world.GameOver() {
		t.Fatal("a rejected world is over")
	}
	if _, _, ok := world.Player(); ok {
		t.Fatal("no player without a run")
	}
}

func TestWorldParameters(t *testing.T) {
	world := NewWithConfig(smallConfig(), nil)
	world.Step()
	snap := world.Parameters()
	for _, key := range []string{"seed", "rule", "energy", "depth", "game_over", "state_map"} {
		if _, ok := snap.Lookup(key); !ok {
			t.Fatalf("missing parameter %q", key)
		}
	}
	if _, ok := snap.Lookup("gravity"); ok {
		t.Fatal("unknown keys should not resolve")
	}
	rule, _ := snap.Lookup("rule")
	if rule.Value != DefaultRule {
		t.Fatalf("rule = %q", rule.Value)
	}
}

func TestWorldPalette(t *testing.T) {
	world := NewWithConfig(smallConfig(), nil)
	if n := len(world.Palette()); n != 3 {
		t.Fatalf("three-state palette has %d colors", n)
	}
	cfg := smallConfig()
	cfg.Code.StateCount = 5
	world = NewWithConfig(cfg, nil)
	if n := len(world.Palette()); n != 5 {
		t.Fatalf("five-state palette has %d colors", n)
	}
}
