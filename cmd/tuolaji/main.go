package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/config"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"tuolaji.hcl" help:"Match configuration file (defaults apply if missing)"`
	LogLevel string           `default:"info" enum:"debug,info,warn,error" help:"Log level"`

	Play     PlayCmd     `cmd:"" help:"Play a match between bots and print every event"`
	Simulate SimulateCmd `cmd:"" help:"Run many matches in parallel and report statistics"`
	Watch    WatchCmd    `cmd:"" help:"Replay bot rounds in an interactive viewer"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tuolaji"),
		kong.Description("Tractor (Sheng Ji) rules engine and bot arena"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

func (cli *CLI) logger() *log.Logger {
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// loadConfig loads and validates the match file, then applies any seed
// given on the command line.
func (cli *CLI) loadConfig(seed int64) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Match.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cli.Config, err)
	}
	return cfg, nil
}

// signalContext is cancelled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// matchRNG returns the match RNG and the seed it was built from. A zero
// seed is replaced with the current time.
func matchRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		return randutil.NewFromTime()
	}
	return randutil.New(seed), seed
}

func agentsFor(cfg *config.Config, rng *rand.Rand, logger *log.Logger) ([game.Players]game.Agent, error) {
	var agents [game.Players]game.Agent
	strategies, rates := cfg.Strategies()
	for i := range agents {
		a, err := bot.New(strategies[i], rng, logger.With("seat", cfg.Seats[i].Name), rates[i])
		if err != nil {
			return agents, err
		}
		agents[i] = a
	}
	return agents, nil
}

func seatNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Seats))
	for i, s := range cfg.Seats {
		names[i] = s.Name
	}
	return names
}
