package simulator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/deck"
)

func testConfig(matches, rounds int) Config {
	return Config{
		Matches: matches,
		Rounds:  rounds,
		Workers: 2,
		Seed:    12345,
		Seats:   DefaultSeats(),
		Timeout: 30 * time.Second,
		Logger:  log.New(io.Discard),
	}
}

func TestNew(t *testing.T) {
	s := New(Config{Matches: 1, Rounds: 1})
	assert.Equal(t, 1, s.config.Workers)
	assert.Equal(t, deck.Two, s.config.StartLevel)
	assert.NotNil(t, s.config.Logger)
}

func TestSimulator_Run(t *testing.T) {
	cfg := testConfig(3, 4)
	for i := range cfg.Seats {
		cfg.Seats[i].RandomRate = 0
	}
	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 12, stats.Rounds)
	require.NoError(t, stats.Validate())
	assert.Equal(t, 3, result.MatchLeads[0]+result.MatchLeads[1]+result.Ties)
	for _, v := range stats.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 400.0)
	}
	assert.Zero(t, stats.Fallbacks, "heuristic bots always answer legally")
}

func TestSimulator_Deterministic(t *testing.T) {
	cfg := testConfig(4, 3)
	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 4
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Values, b.Stats.Values, "worker count must not change results")
	assert.Equal(t, a.MatchLeads, b.MatchLeads)

	cfg.Seed++
	c, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a.Stats.Values, c.Stats.Values)
}

func TestSimulator_MixedSeats(t *testing.T) {
	cfg := testConfig(2, 3)
	cfg.Seats[1] = Seat{Strategy: bot.Random}
	cfg.Seats[3] = Seat{Strategy: bot.Random}

	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, result.Stats.Rounds)
}

func TestSimulator_UnknownStrategy(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Seats[2] = Seat{Strategy: "psychic"}

	_, err := New(cfg).Run(context.Background())
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestSimulator_NothingToPlay(t *testing.T) {
	_, err := New(testConfig(0, 5)).Run(context.Background())
	assert.Error(t, err)

	_, err = New(testConfig(2, 0)).Run(context.Background())
	assert.Error(t, err)
}

func TestSimulator_Timeout(t *testing.T) {
	cfg := testConfig(2, 2)
	cfg.Timeout = time.Nanosecond

	_, err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(2, 2)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintSummary(t *testing.T) {
	result, err := New(testConfig(1, 2)).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "=== FINAL RESULTS ===")
	assert.Contains(t, out, "Rounds played: 2")
	assert.Contains(t, out, "=== ATTACKER POINTS ===")
	assert.Contains(t, out, "=== DECLARER SEAT ===")
}

func BenchmarkSimulator_Run(b *testing.B) {
	cfg := testConfig(1, 5)
	for i := 0; i < b.N; i++ {
		cfg.Seed = int64(i)
		if _, err := New(cfg).Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
