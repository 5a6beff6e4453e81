package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/bot"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/randutil"
	"github.com/lox/tuolaji/internal/render"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func recordRound(t *testing.T, seed int64) []Frame {
	t.Helper()

	engine := game.NewEngine(quietLogger())
	rec := NewRecorder(render.Plain(nil))
	engine.EventBus().Subscribe(rec)

	rng := randutil.New(seed)
	var agents [game.Players]game.Agent
	for i := range agents {
		agents[i] = bot.NewBot(rng, quietLogger())
	}

	r := game.NewTestRound(game.WithSeed(seed))
	rec.Watch(r, "start")
	_, err := engine.PlayRound(context.Background(), r, agents, "replay")
	require.NoError(t, err)
	return rec.Frames()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRecorder(t *testing.T) {
	frames := recordRound(t, 3)

	// start, dealing done, burial, 100 plays, 25 tricks, round end
	require.GreaterOrEqual(t, len(frames), 129)
	assert.Equal(t, "start", frames[0].Event)
	assert.Contains(t, frames[0].Board, "dealing")

	last := frames[len(frames)-1]
	assert.Contains(t, last.Event, "*** ROUND replay OVER ***")
	assert.Contains(t, last.Board, "scoring")
}

func TestModelStepping(t *testing.T) {
	m := NewModel(recordRound(t, 4), quietLogger())
	assert.Nil(t, m.Init())

	m.Update(key("right"))
	m.Update(key("n"))
	assert.Equal(t, 2, m.Position())

	m.Update(key("left"))
	assert.Equal(t, 1, m.Position())

	m.Update(key("end"))
	assert.Equal(t, len(m.frames)-1, m.Position())
	m.Update(key("right"))
	assert.Equal(t, len(m.frames)-1, m.Position(), "stays on the last frame")

	m.Update(key("home"))
	assert.Zero(t, m.Position())
	m.Update(key("left"))
	assert.Zero(t, m.Position())
}

func TestModelAutoplay(t *testing.T) {
	frames := []Frame{{Event: "a"}, {Event: "b"}, {Event: "c"}}
	m := NewModel(frames, quietLogger(), WithAutoplay(0))
	assert.True(t, m.Autoplay())
	assert.NotNil(t, m.Init())

	_, cmd := m.Update(tickMsg{})
	assert.Equal(t, 1, m.Position())
	assert.NotNil(t, cmd)

	_, cmd = m.Update(tickMsg{})
	assert.Equal(t, 2, m.Position())
	assert.Nil(t, cmd)
	assert.False(t, m.Autoplay(), "stops at the end")

	m.Update(key(" "))
	assert.False(t, m.Autoplay(), "nothing left to play")

	m.Update(key("home"))
	_, cmd = m.Update(key(" "))
	assert.True(t, m.Autoplay())
	assert.NotNil(t, cmd)

	m.Update(key("right"))
	assert.False(t, m.Autoplay(), "manual steps pause")
	_, cmd = m.Update(tickMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Position())
}

func TestModelView(t *testing.T) {
	m := NewModel(nil, quietLogger())
	assert.Equal(t, "Nothing to replay.", m.View())

	m = NewModel([]Frame{{Event: "first", Board: "board one"}, {Event: "second", Board: "board two"}}, quietLogger())
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(key("right"))
	view := m.View()
	assert.Contains(t, view, "first")
	assert.Contains(t, view, "second")
	assert.Contains(t, view, "board two")
	assert.NotContains(t, view, "board one")
	assert.Contains(t, view, "2/2 paused")

	_, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
