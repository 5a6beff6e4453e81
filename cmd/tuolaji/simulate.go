package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/simulator"
)

type SimulateCmd struct {
	Matches int           `default:"100" help:"Number of matches to simulate"`
	Rounds  int           `help:"Rounds per match (overrides the config file)"`
	Workers int           `help:"Matches played in parallel (0 for one per CPU)"`
	Seed    int64         `help:"RNG seed (0 uses the config file, then the clock)"`
	Timeout time.Duration `default:"1m" help:"Per-match timeout"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := cli.loadConfig(c.Seed)
	if err != nil {
		return err
	}

	rounds := cfg.Match.Rounds
	if c.Rounds > 0 {
		rounds = c.Rounds
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start, _ := cfg.StartLevel()

	var seats [game.Players]simulator.Seat
	strategies, rates := cfg.Strategies()
	for i := range seats {
		seats[i] = simulator.Seat{Strategy: strategies[i], RandomRate: rates[i]}
	}

	logger.Info("Simulating", "matches", c.Matches, "rounds", rounds, "workers", workers, "seed", seed)
	began := time.Now()

	// Per-round logs from every match are only useful when debugging.
	matchLogger := cli.logger()
	if matchLogger.GetLevel() > log.DebugLevel {
		matchLogger.SetLevel(log.WarnLevel)
	}

	ctx, cancel := signalContext()
	defer cancel()

	sim := simulator.New(simulator.Config{
		Matches:    c.Matches,
		Rounds:     rounds,
		Workers:    workers,
		Seed:       seed,
		StartLevel: start,
		Seats:      seats,
		Timeout:    c.Timeout,
		Logger:     matchLogger,
	})
	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, result)
	logger.Info("Simulation complete", "rounds", result.Stats.Rounds, "elapsed", time.Since(began).Round(time.Millisecond))
	return nil
}
