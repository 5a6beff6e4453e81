// Package config loads match configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
)

// Config represents the complete match configuration
type Config struct {
	Match MatchSettings `hcl:"match,block"`
	Seats []SeatConfig  `hcl:"seat,block"`
}

// MatchSettings contains match-level configuration
type MatchSettings struct {
	Rounds     int    `hcl:"rounds,optional"`
	StartLevel string `hcl:"start_level,optional"`
	Seed       int64  `hcl:"seed,optional"`
	ThinkDelay string `hcl:"think_delay,optional"`
	KittySeat  int    `hcl:"kitty_seat,optional"`
}

// SeatConfig defines the automated player in one seat. Seats are taken in
// file order starting from seat 0.
type SeatConfig struct {
	Name       string   `hcl:"name,label"`
	Strategy   string   `hcl:"strategy,optional"`
	RandomRate *float64 `hcl:"random_rate,optional"`
}

var seatNames = [game.Players]string{"north", "east", "south", "west"}

// DefaultConfig returns default match configuration
func DefaultConfig() *Config {
	c := &Config{
		Match: MatchSettings{
			Rounds:     8,
			StartLevel: "2",
			ThinkDelay: "0s",
		},
	}
	c.applyDefaults()
	return c
}

// Load loads match configuration from an HCL file. A missing file gives
// the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Match.Rounds == 0 {
		c.Match.Rounds = 8
	}
	if c.Match.StartLevel == "" {
		c.Match.StartLevel = "2"
	}
	if c.Match.ThinkDelay == "" {
		c.Match.ThinkDelay = "0s"
	}

	if len(c.Seats) == 0 {
		for _, name := range seatNames {
			c.Seats = append(c.Seats, SeatConfig{Name: name})
		}
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = string(bot.Heuristic)
		}
		if c.Seats[i].RandomRate == nil {
			rate := bot.DefaultRandomRate
			c.Seats[i].RandomRate = &rate
		}
	}
}

// Validate validates the match configuration
func (c *Config) Validate() error {
	if c.Match.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Match.Rounds)
	}
	if _, err := c.StartLevel(); err != nil {
		return err
	}
	if _, err := c.ThinkDelay(); err != nil {
		return err
	}
	if c.Match.KittySeat < 0 || c.Match.KittySeat >= game.Players {
		return fmt.Errorf("kitty_seat must be between 0 and %d, got %d", game.Players-1, c.Match.KittySeat)
	}

	if len(c.Seats) != game.Players {
		return fmt.Errorf("exactly %d seats must be configured, got %d", game.Players, len(c.Seats))
	}
	for _, seat := range c.Seats {
		if _, err := bot.ParseStrategy(seat.Strategy); err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		if rate := *seat.RandomRate; rate < 0 || rate > 1 {
			return fmt.Errorf("seat %s: random_rate must be between 0 and 1, got %g", seat.Name, rate)
		}
	}
	return nil
}

// StartLevel returns the rank both teams start the match on
func (c *Config) StartLevel() (deck.Rank, error) {
	r, err := deck.ParseRank(c.Match.StartLevel)
	if err != nil {
		return deck.NoRank, fmt.Errorf("start_level: %w", err)
	}
	return r, nil
}

// ThinkDelay returns the pause before each automated action
func (c *Config) ThinkDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Match.ThinkDelay)
	if err != nil {
		return 0, fmt.Errorf("think_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("think_delay must not be negative, got %s", d)
	}
	return d, nil
}

// Strategies returns each seat's strategy and random rate, in seat order.
// Call Validate first.
func (c *Config) Strategies() ([game.Players]bot.Strategy, [game.Players]float64) {
	var strategies [game.Players]bot.Strategy
	var rates [game.Players]float64
	for i, seat := range c.Seats[:game.Players] {
		strategies[i] = bot.Strategy(seat.Strategy)
		rates[i] = *seat.RandomRate
	}
	return strategies, rates
}
