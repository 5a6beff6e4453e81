package main

import (
	"fmt"
	"os"

	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/render"
)

type PlayCmd struct {
	Rounds int   `help:"Rounds to play (overrides the config file)"`
	Seed   int64 `help:"RNG seed (0 uses the config file, then the clock)"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := cli.loadConfig(c.Seed)
	if err != nil {
		return err
	}
	rounds := cfg.Match.Rounds
	if c.Rounds > 0 {
		rounds = c.Rounds
	}
	start, _ := cfg.StartLevel()
	delay, _ := cfg.ThinkDelay()

	rng, seed := matchRNG(cfg.Match.Seed)
	logger.Info("Starting match", "rounds", rounds, "seed", seed, "startLevel", start)

	agents, err := agentsFor(cfg, rng, logger)
	if err != nil {
		return err
	}

	renderer := render.New(os.Stdout, seatNames(cfg))
	engine := game.NewEngine(logger, game.WithThinkDelay(delay))
	engine.EventBus().Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		fmt.Fprintln(os.Stdout, renderer.Event(event))
	}))

	ctx, cancel := signalContext()
	defer cancel()

	m := game.NewMatch(start, cfg.Match.KittySeat)
	result, err := engine.PlayMatch(ctx, m, rng, agents, rounds)
	if err != nil {
		return fmt.Errorf("match stopped after %d rounds: %w", len(result.Rounds), err)
	}

	fmt.Fprintf(os.Stdout, "\nFinal levels: team 0 (%s, %s) on %s, team 1 (%s, %s) on %s\n",
		renderer.SeatName(0), renderer.SeatName(2), result.Levels[0],
		renderer.SeatName(1), renderer.SeatName(3), result.Levels[1])
	return nil
}
