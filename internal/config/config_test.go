package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/deck"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 8, c.Match.Rounds)
	level, err := c.StartLevel()
	require.NoError(t, err)
	assert.Equal(t, deck.Two, level)

	strategies, rates := c.Strategies()
	for i := range strategies {
		assert.Equal(t, bot.Heuristic, strategies[i])
		assert.Equal(t, bot.DefaultRandomRate, rates[i])
	}
	assert.Equal(t, "west", c.Seats[3].Name)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
match {
  rounds      = 3
  start_level = "J"
  seed        = 42
  think_delay = "250ms"
  kitty_seat  = 2
}

seat "north" {
  strategy    = "heuristic"
  random_rate = 0
}
seat "east" {
  strategy = "random"
}
seat "south" {}
seat "west" {
  random_rate = 0.5
}
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 3, c.Match.Rounds)
	assert.Equal(t, int64(42), c.Match.Seed)
	assert.Equal(t, 2, c.Match.KittySeat)

	level, err := c.StartLevel()
	require.NoError(t, err)
	assert.Equal(t, deck.Jack, level)

	delay, err := c.ThinkDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, delay)

	strategies, rates := c.Strategies()
	assert.Equal(t, [4]bot.Strategy{bot.Heuristic, bot.Random, bot.Heuristic, bot.Heuristic}, strategies)
	assert.Equal(t, [4]float64{0, bot.DefaultRandomRate, bot.DefaultRandomRate, 0.5}, rates)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `match {`))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `match { players = 5 }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"rounds", func(c *Config) { c.Match.Rounds = -1 }, "rounds must be positive"},
		{"start level", func(c *Config) { c.Match.StartLevel = "1" }, "start_level"},
		{"think delay", func(c *Config) { c.Match.ThinkDelay = "soon" }, "think_delay"},
		{"negative delay", func(c *Config) { c.Match.ThinkDelay = "-1s" }, "must not be negative"},
		{"kitty seat", func(c *Config) { c.Match.KittySeat = 4 }, "kitty_seat"},
		{"seat count", func(c *Config) { c.Seats = c.Seats[:3] }, "exactly 4 seats"},
		{"strategy", func(c *Config) { c.Seats[1].Strategy = "psychic" }, "seat east"},
		{"random rate", func(c *Config) {
			rate := 1.5
			c.Seats[2].RandomRate = &rate
		}, "random_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
