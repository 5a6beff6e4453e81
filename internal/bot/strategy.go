package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/tuolaji/internal/game"
)

// Strategy names a kind of automated player.
type Strategy string

const (
	Heuristic Strategy = "heuristic"
	Random    Strategy = "random"
)

// Strategies lists every known strategy.
var Strategies = []Strategy{Heuristic, Random}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, known := range Strategies {
		if Strategy(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q (want one of %v)", s, Strategies)
}

// New creates a player for strategy. randomRate only applies to the
// heuristic player.
func New(strategy Strategy, rng *rand.Rand, logger *log.Logger, randomRate float64) (game.Agent, error) {
	switch strategy {
	case Heuristic:
		return NewBot(rng, logger, WithRandomRate(randomRate)), nil
	case Random:
		return NewRandBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
