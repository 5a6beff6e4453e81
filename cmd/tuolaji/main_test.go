package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/bot"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	cli, ctx := parse(t, "simulate", "--matches", "5", "--workers", "2", "--timeout", "10s")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 5, cli.Simulate.Matches)
	assert.Equal(t, 2, cli.Simulate.Workers)
	assert.Equal(t, 10*time.Second, cli.Simulate.Timeout)
	assert.Equal(t, "tuolaji.hcl", cli.Config)

	cli, ctx = parse(t, "--config", "x.hcl", "watch", "--rounds", "3", "--autoplay", "500ms")
	assert.Equal(t, "watch", ctx.Command())
	assert.Equal(t, "x.hcl", cli.Config)
	assert.Equal(t, 3, cli.Watch.Rounds)
	assert.Equal(t, 500*time.Millisecond, cli.Watch.Autoplay)

	cli, ctx = parse(t, "play", "--seed", "9")
	assert.Equal(t, "play", ctx.Command())
	assert.Equal(t, int64(9), cli.Play.Seed)
}

func TestLoadConfigAndAgents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
match {
  seed = 11
}
seat "a" { strategy = "random" }
seat "b" {}
seat "c" {}
seat "d" {}
`), 0o644))

	cli := &CLI{Config: path}
	cfg, err := cli.loadConfig(0)
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Match.Seed)
	assert.Equal(t, []string{"a", "b", "c", "d"}, seatNames(cfg))

	cfg, err = cli.loadConfig(99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Match.Seed)

	rng, seed := matchRNG(cfg.Match.Seed)
	assert.Equal(t, int64(99), seed)
	agents, err := agentsFor(cfg, rng, log.New(io.Discard))
	require.NoError(t, err)
	assert.IsType(t, &bot.RandBot{}, agents[0])
	assert.IsType(t, &bot.Bot{}, agents[1])

	_, seed = matchRNG(0)
	assert.NotZero(t, seed)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`match { rounds = -2 }`), 0o644))

	_, err := (&CLI{Config: path}).loadConfig(0)
	assert.ErrorContains(t, err, "invalid config")
}
