package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"time"

	"spacewalk/internal/core"
	"spacewalk/internal/logs"
	"spacewalk/internal/sims/spacewalk"
)

type seedResult struct {
	seed     int64
	ticks    int
	energy   int
	depth    int
	maxDepth int
	x, t     int
	gameOver bool
	slices   int
	err      error
}

func (r seedResult) String() string {
	if r.err != nil {
		return fmt.Sprintf("seed=%d error=%v", r.seed, r.err)
	}
	status := "running"
	if r.gameOver {
		status = "game over"
	}
	return fmt.Sprintf("seed=%d ticks=%d energy=%d depth=%d maxDepth=%d pos=(%d,%d) slices=%d %s",
		r.seed, r.ticks, r.energy, r.depth, r.maxDepth, r.x, r.t, r.slices, status)
}

type sweep struct {
	cfg     spacewalk.Config
	ticks   int
	workers int
	tps     int
	log     *slog.Logger
}

func main() {
	seed := flag.Int64("seed", spacewalk.DefaultConfig().Seed, "first seed; generators use seed+1 and seed+2")
	seeds := flag.Int("seeds", 1, "number of consecutive seeds to run")
	ticks := flag.Int("ticks", 100000, "tick budget per seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	size := flag.Int("size", 0, "space size override (0 keeps the preset/default)")
	depthLeftBehind := flag.Int("depth-left-behind", -1, "horizon lag override (-1 keeps the preset/default)")
	preset := flag.String("preset", "", "CUE preset file")
	tps := flag.Int("tps", 0, "pace each run to this many ticks per second (0 = unpaced)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logJSON := flag.String("log-json", "", "also append JSON logs to this file")
	flag.Parse()

	level := new(slog.LevelVar)
	lvl, err := logs.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	level.Set(lvl)
	logger, closeLog, err := logs.New(logs.Options{JSONPath: *logJSON, Level: level})
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	cfg := spacewalk.DefaultConfig()
	if *preset != "" {
		cfg, err = spacewalk.LoadPreset(spacewalk.NewPresetLoader(*preset), cfg)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *size > 0 {
		cfg.SpaceSize = *size
	}
	if *depthLeftBehind >= 0 {
		cfg.DepthLeftBehind = *depthLeftBehind
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sweep{cfg: cfg, ticks: *ticks, workers: *workers, tps: *tps, log: logger}
	logger.Info("sweep", "seeds", *seeds, "first", *seed, "ticks", *ticks, "workers", *workers, "code", cfg.Code.String())

	start := time.Now()
	results := s.run(ctx, *seed, *seeds)
	report(os.Stdout, results)
	logger.Info("done", "elapsed", time.Since(start).Round(time.Millisecond))
}

// run ticks every seed in [first, first+n) and returns results in seed order.
func (s sweep) run(ctx context.Context, first int64, n int) []seedResult {
	workers := s.workers
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- s.runSeed(ctx, seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- first + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []seedResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })
	return all
}

func (s sweep) runSeed(ctx context.Context, seed int64) seedResult {
	opts := s.cfg.OptionsForSeed(seed)
	opts.Logger = s.log.With("seed", seed)
	run, err := spacewalk.NewRun(opts)
	if err != nil {
		return seedResult{seed: seed, err: err}
	}

	var pace *core.FixedStep
	if s.tps > 0 {
		pace = core.NewFixedStep(s.tps)
	}
	for i := 0; i < s.ticks; i++ {
		if i%1024 == 0 && ctx.Err() != nil {
			break
		}
		if pace != nil {
			if err := pace.Wait(ctx); err != nil {
				break
			}
		}
		if !run.Tick() {
			break
		}
	}

	snap := run.Snapshot()
	return seedResult{
		seed:     seed,
		ticks:    snap.Ticks,
		energy:   snap.Energy,
		depth:    snap.Depth,
		maxDepth: snap.MaxDepth,
		x:        snap.X,
		t:        snap.T,
		gameOver: snap.GameOver,
		slices:   run.Len(),
	}
}

func report(w io.Writer, results []seedResult) {
	over := 0
	best := -1
	for i, r := range results {
		fmt.Fprintln(w, r)
		if r.err != nil {
			continue
		}
		if r.gameOver {
			over++
		}
		if best < 0 || r.maxDepth > results[best].maxDepth {
			best = i
		}
	}
	fmt.Fprintf(w, "\n%d/%d runs ended in game over\n", over, len(results))
	if best >= 0 {
		fmt.Fprintf(w, "deepest: %s\n", results[best])
	}
}
