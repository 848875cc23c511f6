//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"

	"spacewalk/internal/app"
	"spacewalk/internal/core"
	"spacewalk/internal/logs"
	_ "spacewalk/internal/sims/elementary"
	"spacewalk/internal/sims/spacewalk"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := new(slog.LevelVar)
	if lvl, err := logs.ParseLevel(cfg.LogLevel); err == nil {
		level.Set(lvl)
	}
	logger, closeLog, err := logs.New(logs.Options{JSONPath: cfg.LogJSON, Level: level})
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	sim, err := buildSim(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg, logger)
	game.SetMarker(spacewalk.PlayerColor, spacewalk.PlayerMarkerRadius)
	size := sim.Size()

	ebiten.SetWindowTitle("spacewalk — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUDWidth, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func buildSim(cfg *app.Config, logger *slog.Logger) (core.Sim, error) {
	overrides := cfg.Set.Map()
	if cfg.Sim == "spacewalk" {
		swCfg := spacewalk.FromMap(overrides)
		if cfg.Preset != "" {
			loaded, err := spacewalk.LoadPreset(spacewalk.NewPresetLoader(cfg.Preset), swCfg)
			if err != nil {
				return nil, err
			}
			swCfg = loaded
		}
		if !flagSet("seed") && cfg.Preset != "" {
			cfg.Seed = swCfg.Seed
		}
		swCfg.Seed = cfg.Seed
		world := spacewalk.NewWithConfig(swCfg, logger)
		if err := world.Err(); err != nil {
			return nil, err
		}
		return world, nil
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, errors.New("unknown sim " + cfg.Sim)
	}
	sim := factory(overrides)
	sim.Reset(cfg.Seed)
	return sim, nil
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
