package simulator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/randutil"
	"github.com/lox/tuolaji/internal/statistics"
)

// Seat configures the automated player in one seat
type Seat struct {
	Strategy   bot.Strategy
	RandomRate float64
}

// DefaultSeats is four heuristic bots at the default random rate.
func DefaultSeats() [game.Players]Seat {
	var seats [game.Players]Seat
	for i := range seats {
		seats[i] = Seat{Strategy: bot.Heuristic, RandomRate: bot.DefaultRandomRate}
	}
	return seats
}

// Config holds configuration for running simulations
type Config struct {
	Matches    int
	Rounds     int // rounds per match
	Workers    int
	Seed       int64
	StartLevel deck.Rank
	Seats      [game.Players]Seat
	Timeout    time.Duration // per match, zero for none
	Logger     *log.Logger
}

// Result is the outcome of a simulation run
type Result struct {
	Stats *statistics.Statistics
	// MatchLeads counts matches each team finished ahead on level
	MatchLeads [2]int
	Ties       int
}

// Simulator runs many matches of automated players
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if !config.StartLevel.Valid() {
		config.StartLevel = deck.Two
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

type matchOutcome struct {
	stats  *statistics.Statistics
	levels [2]deck.Rank
}

// Run plays every match, Workers at a time, and aggregates the rounds in
// match order so a seed always produces the same result.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Matches <= 0 || s.config.Rounds <= 0 {
		return nil, fmt.Errorf("need at least one match and one round, got %d matches of %d rounds", s.config.Matches, s.config.Rounds)
	}

	outcomes := make([]matchOutcome, s.config.Matches)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	var mu sync.Mutex
	done := 0
	for i := 0; i < s.config.Matches; i++ {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			out, err := s.playMatch(ctx, seed)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i+1, seed, err)
			}
			outcomes[i] = out

			mu.Lock()
			done++
			s.config.Logger.Debug("Match complete", "match", i+1, "done", done, "levels", fmt.Sprintf("%s/%s", out.levels[0], out.levels[1]))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Stats: &statistics.Statistics{}}
	for _, out := range outcomes {
		result.Stats.Merge(out.stats)
		switch {
		case out.levels[0] > out.levels[1]:
			result.MatchLeads[0]++
		case out.levels[1] > out.levels[0]:
			result.MatchLeads[1]++
		default:
			result.Ties++
		}
	}

	if err := result.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return result, nil
}

func (s *Simulator) playMatch(ctx context.Context, seed int64) (matchOutcome, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	agents, err := s.agents(rng)
	if err != nil {
		return matchOutcome{}, err
	}

	engine := game.NewEngine(s.config.Logger)
	m := game.NewMatch(s.config.StartLevel, 0)
	res, err := engine.PlayMatch(ctx, m, rng, agents, s.config.Rounds)
	if err != nil {
		return matchOutcome{}, err
	}

	stats := &statistics.Statistics{}
	for _, rr := range res.Rounds {
		stats.Add(RoundStats(rr))
	}
	return matchOutcome{stats: stats, levels: res.Levels}, nil
}

func (s *Simulator) agents(rng *rand.Rand) ([game.Players]game.Agent, error) {
	var agents [game.Players]game.Agent
	for i, seat := range s.config.Seats {
		strategy := seat.Strategy
		if strategy == "" {
			strategy = bot.Heuristic
		}
		a, err := bot.New(strategy, rng, s.config.Logger.With("seat", i), seat.RandomRate)
		if err != nil {
			return agents, err
		}
		agents[i] = a
	}
	return agents, nil
}

// RoundStats converts an engine round result for the statistics.
func RoundStats(rr *game.RoundResult) statistics.RoundResult {
	return statistics.RoundResult{
		AttackerPoints: rr.Outcome.AttackerPoints,
		AttackersWin:   rr.Outcome.AttackersWin,
		WinnerTeam:     rr.Outcome.WinnerTeam,
		LevelDelta:     rr.Outcome.LevelDelta,
		Declarer:       rr.Declarer,
		Declared:       rr.Declared,
		KittyPoints:    rr.KittyPoints,
		Fallbacks:      rr.Fallbacks,
	}
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, result *Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Match leads: team 0 %d, team 1 %d, level %d\n", result.MatchLeads[0], result.MatchLeads[1], result.Ties)

	fmt.Fprintf(w, "\n=== ATTACKER POINTS ===\n")
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Attackers win: %d (%.1f%%), defenders hold: %d\n",
		stats.AttackerWins, stats.AttackerWinRate()*100, stats.DefenderHolds)
	for delta, n := range stats.LevelDeltas {
		fmt.Fprintf(w, "+%d levels: %d rounds\n", delta, n)
	}
	fmt.Fprintf(w, "Levels gained: team 0 %d, team 1 %d\n", stats.LevelsGained[0], stats.LevelsGained[1])

	fmt.Fprintf(w, "\n=== DEAL AND KITTY ===\n")
	fmt.Fprintf(w, "Rounds with a declaration: %d (%.1f%%)\n",
		stats.DeclaredRounds, float64(stats.DeclaredRounds)/float64(max(stats.Rounds, 1))*100)
	fmt.Fprintf(w, "Kitty bonus: %d total, %d max\n", stats.KittyPoints, stats.MaxKitty)
	fmt.Fprintf(w, "Replaced answers: %d\n", stats.Fallbacks)

	fmt.Fprintf(w, "\n=== DECLARER SEAT ===\n")
	for seat, ss := range stats.SeatResults {
		if ss.Rounds > 0 {
			fmt.Fprintf(w, "Seat %d: %d rounds, %d held, %.1f attacker points\n", seat, ss.Rounds, ss.Holds, stats.SeatMean(seat))
		}
	}
}
