package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spacewalk/internal/sims/spacewalk"
)

func testSweep(workers int) sweep {
	cfg := spacewalk.DefaultConfig()
	cfg.SpaceSize = 15
	cfg.DepthLeftBehind = 3
	return sweep{cfg: cfg, ticks: 500, workers: workers, log: slog.New(slog.DiscardHandler)}
}

func TestSweepOrderedAndDeterministic(t *testing.T) {
	serial := testSweep(1).run(context.Background(), 10, 6)
	parallel := testSweep(4).run(context.Background(), 10, 6)

	require.Len(t, serial, 6)
	require.Equal(t, serial, parallel)
	for i, r := range serial {
		require.Equal(t, int64(10+i), r.seed)
		require.NoError(t, r.err)
		require.LessOrEqual(t, r.ticks, 500)
		require.GreaterOrEqual(t, r.x, 1)
		require.LessOrEqual(t, r.x, 13)
	}
}

func TestSweepReportsInvalidConfig(t *testing.T) {
	s := testSweep(2)
	s.cfg.SpaceSize = 1
	results := s.run(context.Background(), 0, 2)
	require.Len(t, results, 2)
	for _, r := range results {
		require.ErrorIs(t, r.err, spacewalk.ErrInvalidOptions)
	}

	var buf bytes.Buffer
	report(&buf, results)
	require.Contains(t, buf.String(), "0/2 runs ended in game over")
	require.NotContains(t, buf.String(), "deepest")
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := testSweep(2).run(ctx, 0, 50)
	require.LessOrEqual(t, len(results), 50)
	for _, r := range results {
		require.Zero(t, r.ticks, "a cancelled run should not tick")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, []seedResult{
		{seed: 1, ticks: 10, maxDepth: 4, gameOver: true},
		{seed: 2, ticks: 20, maxDepth: 9},
	})
	out := buf.String()
	require.Contains(t, out, "seed=1 ticks=10")
	require.Contains(t, out, "1/2 runs ended in game over")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "running"))
	require.Contains(t, out, "deepest: seed=2")
}
