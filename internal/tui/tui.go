// Package tui is a read-only bubbletea viewer that steps through recorded
// rounds event by event.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	boardWidth   = 72
	defaultDelay = 700 * time.Millisecond
)

// tickMsg advances the replay while autoplay is on.
type tickMsg struct{}

// Model is the viewer's bubbletea model
type Model struct {
	logger *log.Logger
	frames []Frame
	pos    int

	logViewport viewport.Model
	focusedPane int // 0 = log, 1 = board

	autoplay bool
	delay    time.Duration
	quitting bool

	// Dimensions
	width       int
	height      int
	initialized bool
}

// Option configures a Model.
type Option func(*Model)

// WithAutoplay starts the replay advancing every delay.
func WithAutoplay(delay time.Duration) Option {
	return func(m *Model) {
		m.autoplay = true
		if delay > 0 {
			m.delay = delay
		}
	}
}

// NewModel creates a viewer over frames, starting at the first.
func NewModel(frames []Frame, logger *log.Logger, opts ...Option) *Model {
	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		logger:      logger.WithPrefix("tui"),
		frames:      frames,
		logViewport: vp,
		delay:       defaultDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Position returns the index of the frame on screen.
func (m *Model) Position() int {
	return m.pos
}

// Autoplay reports whether the replay is advancing on its own.
func (m *Model) Autoplay() bool {
	return m.autoplay
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.autoplay {
		return m.tick()
	}
	return nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) atEnd() bool {
	return m.pos >= len(m.frames)-1
}

func (m *Model) step(n int) {
	m.pos = max(0, min(m.pos+n, len(m.frames)-1))
	m.logViewport.SetContent(m.renderLog())
	m.logViewport.GotoBottom()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.autoplay {
			return m, nil
		}
		m.step(1)
		if m.atEnd() {
			m.autoplay = false
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.focusedPane = 1 - m.focusedPane
			return m, nil
		case "right", "l", "n":
			m.autoplay = false
			m.step(1)
			return m, nil
		case "left", "h", "p":
			m.autoplay = false
			m.step(-1)
			return m, nil
		case "home":
			m.autoplay = false
			m.step(-len(m.frames))
			return m, nil
		case "end":
			m.autoplay = false
			m.step(len(m.frames))
			return m, nil
		case " ":
			m.autoplay = !m.autoplay && !m.atEnd()
			if m.autoplay {
				return m, m.tick()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 0 {
		m.logViewport, cmd = m.logViewport.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.frames) == 0 {
		return "Nothing to replay."
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	help := m.renderHelp()
	paneHeight := max(1, m.height-lipgloss.Height(help)-2) // border x 2

	logWidth := max(1, m.width-boardWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.renderLog())
	if !m.initialized {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(unfocusedBorder).
		Width(logWidth).
		Height(paneHeight)
	boardStyle := logStyle.Width(boardWidth)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(focusedBorder)
	} else {
		boardStyle = boardStyle.BorderForeground(focusedBorder)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		logStyle.Render(m.logViewport.View()),
		boardStyle.Render(m.frames[m.pos].Board))
	return lipgloss.JoinVertical(lipgloss.Left, top, help)
}

// renderLog lists every event up to the current frame
func (m *Model) renderLog() string {
	if len(m.frames) == 0 {
		return ""
	}
	lines := make([]string, 0, m.pos+1)
	for i, f := range m.frames[:m.pos+1] {
		if i == m.pos {
			lines = append(lines, CurrentEventStyle.Render("> ")+f.Event)
			continue
		}
		lines = append(lines, "  "+f.Event)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelp() string {
	state := "paused"
	if m.autoplay {
		state = "playing"
	}
	status := HeaderStyle.Render(fmt.Sprintf(" %d/%d %s ", m.pos+1, len(m.frames), state))
	return status + " " + InfoStyle.Render("←/→ step • space play/pause • home/end • tab focus • ↑↓ scroll log • q quit")
}
