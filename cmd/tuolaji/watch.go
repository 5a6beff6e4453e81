package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/gameid"
	"github.com/lox/tuolaji/internal/render"
	"github.com/lox/tuolaji/internal/tui"
)

type WatchCmd struct {
	Rounds   int           `default:"1" help:"Rounds to record before opening the viewer"`
	Seed     int64         `help:"RNG seed (0 uses the config file, then the clock)"`
	Autoplay time.Duration `help:"Advance automatically at this interval (0 to step by hand)"`
}

func (c *WatchCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := cli.loadConfig(c.Seed)
	if err != nil {
		return err
	}
	start, _ := cfg.StartLevel()

	rng, seed := matchRNG(cfg.Match.Seed)
	logger.Info("Recording rounds", "rounds", c.Rounds, "seed", seed)

	agents, err := agentsFor(cfg, rng, logger)
	if err != nil {
		return err
	}

	// Frames are drawn now and shown later, in stdout's colour profile.
	renderer := render.NewWithProfile(io.Discard, termenv.EnvColorProfile(), seatNames(cfg))
	rec := tui.NewRecorder(renderer)
	engine := game.NewEngine(logger.WithPrefix("record"))
	engine.EventBus().Subscribe(rec)

	ctx, cancel := signalContext()
	defer cancel()

	ids := gameid.NewGenerator(rng)
	m := game.NewMatch(start, cfg.Match.KittySeat)
	for i := 0; i < c.Rounds; i++ {
		r := m.NewRound(rng)
		id := ids.Generate()
		rec.Watch(r, fmt.Sprintf("Round %d (%s): trump rank %s, levels %s/%s", i+1, id, r.TrumpRank(), m.Levels[0], m.Levels[1]))
		if _, err := engine.PlayRound(ctx, r, agents, id); err != nil {
			return err
		}
		m.ApplyRound(r)
	}

	var opts []tui.Option
	if c.Autoplay > 0 {
		opts = append(opts, tui.WithAutoplay(c.Autoplay))
	}
	model := tui.NewModel(rec.Frames(), logger, opts...)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
