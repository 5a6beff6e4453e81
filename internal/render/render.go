// Package render draws cards, tricks and rounds as styled terminal text.
// A Renderer created for a writer that is not a terminal, or with the
// termenv.Ascii profile, produces plain text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/trick"
	"github.com/lox/tuolaji/internal/trump"
)

// Renderer holds the styles for one output.
type Renderer struct {
	lg *lipgloss.Renderer

	header    lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	trumpCard lipgloss.Style
	winner    lipgloss.Style
	info      lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style

	formatter *game.EventFormatter
}

// New creates a renderer for w, detecting its colour profile.
func New(w io.Writer, names []string) *Renderer {
	return newRenderer(lipgloss.NewRenderer(w), names)
}

// NewWithProfile creates a renderer for w with a fixed colour profile.
func NewWithProfile(w io.Writer, profile termenv.Profile, names []string) *Renderer {
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(profile)
	return newRenderer(lg, names)
}

// Plain renders without any escape sequences.
func Plain(names []string) *Renderer {
	return NewWithProfile(io.Discard, termenv.Ascii, names)
}

func newRenderer(lg *lipgloss.Renderer, names []string) *Renderer {
	return &Renderer{
		lg: lg,
		header: lg.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		redCard: lg.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: lg.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		trumpCard: lg.NewStyle().
			Underline(true),
		winner: lg.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		info: lg.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		success: lg.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		warning: lg.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		formatter: game.NewEventFormatter(game.FormattingOptions{
			SeatNames:   names,
			ShowReasons: true,
			ShowKitty:   true,
		}),
	}
}

// SeatName returns the display name of seat.
func (r *Renderer) SeatName(seat int) string {
	return r.formatter.SeatName(seat)
}

// Card renders one card, coloured by suit and underlined when trump.
func (r *Renderer) Card(ts trump.System, c deck.Card) string {
	style := r.blackCard
	if c.IsRed() {
		style = r.redCard
	}
	if ts.IsTrump(c) {
		style = style.Inherit(r.trumpCard)
	}
	return style.Render(c.String())
}

// Cards renders cards in the given order.
func (r *Renderer) Cards(ts trump.System, cards []deck.Card) string {
	if len(cards) == 0 {
		return r.info.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(ts, c)
	}
	return strings.Join(parts, " ")
}

// Hand renders a hand strongest first, one group per segment, e.g.
// "trump: BJ ♠2 ♠A | ♥: ♥K ♥3".
func (r *Renderer) Hand(ts trump.System, hand []deck.Card) string {
	sorted := ts.SortHand(hand)
	var segments []string
	for _, g := range ts.Groups(sorted) {
		segments = append(segments, fmt.Sprintf("%s: %s", g, r.Cards(ts, ts.InGroup(sorted, g))))
	}
	if len(segments) == 0 {
		return r.info.Render("(empty)")
	}
	return strings.Join(segments, r.info.Render(" | "))
}

// Trick renders one line per play, marking the play currently winning.
func (r *Renderer) Trick(t *trick.Trick) string {
	if t == nil || t.IsEmpty() {
		return r.info.Render("(no cards played)")
	}
	winning, _ := t.CurrentWinner()

	var lines []string
	for _, p := range t.Plays() {
		line := fmt.Sprintf("%-8s %s", r.SeatName(p.Seat)+":", r.Cards(t.Trump(), p.Cards))
		if p.Seat == winning {
			line += " " + r.winner.Render("*")
		}
		lines = append(lines, line)
	}
	if t.IsComplete() {
		lines = append(lines, r.info.Render(fmt.Sprintf("%d points", t.Points())))
	}
	return strings.Join(lines, "\n")
}

// Round renders the round's public state and every hand.
func (r *Renderer) Round(rd *game.Round) string {
	var sb strings.Builder
	ts := rd.Trump()

	sb.WriteString(r.header.Render(fmt.Sprintf(" %s | trump %s ", rd.Phase(), ts)))
	sb.WriteString("\n")

	decl := "nobody has declared"
	if d, ok := rd.Declaration(); ok {
		decl = fmt.Sprintf("%s declared %s", r.SeatName(d.Seat), d.Name())
	}
	fmt.Fprintf(&sb, "Declarer: %s (%s)\n", r.SeatName(rd.Declarer()), decl)

	scores := rd.Scores()
	fmt.Fprintf(&sb, "Points: team 0 %d, team 1 %d (attackers team %d)\n", scores[0], scores[1], rd.AttackingTeam())

	for seat := 0; seat < game.Players; seat++ {
		marker := "  "
		if rd.Phase() == game.Playing && rd.CurrentPlayer() == seat {
			marker = r.winner.Render("> ")
		}
		fmt.Fprintf(&sb, "%s%-8s %s\n", marker, r.SeatName(seat)+":", r.Hand(ts, rd.Hand(seat)))
	}

	switch rd.Phase() {
	case game.Playing:
		fmt.Fprintf(&sb, "Trick %d\n", len(rd.Tricks())+1)
		if t := rd.CurrentTrick(); !t.IsEmpty() {
			sb.WriteString(r.Trick(t))
			sb.WriteString("\n")
		}
	case game.Scoring:
		tricks := rd.Tricks()
		fmt.Fprintf(&sb, "Last trick (%d)\n%s\n", len(tricks), r.Trick(tricks[len(tricks)-1]))
		fmt.Fprintf(&sb, "Kitty: %s (%d points)\n", r.Cards(ts, rd.Kitty()), rd.KittyPoints())
		sb.WriteString(r.success.Render(rd.Outcome().Summary()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Event renders a round event as one styled line.
func (r *Renderer) Event(event game.GameEvent) string {
	line := r.formatter.Format(event)
	switch e := event.(type) {
	case game.RoundStartEvent, game.DealingDoneEvent:
		return r.header.Render(line)
	case game.TrumpDeclaredEvent:
		return r.winner.Render(line)
	case game.TrickCompleteEvent:
		return r.success.Render(line)
	case game.CardsPlayedEvent:
		if e.Fallback {
			return r.warning.Render(line)
		}
		return line
	case game.KittyBuriedEvent:
		if e.Fallback {
			return r.warning.Render(line)
		}
		return r.info.Render(line)
	case game.RoundEndEvent:
		return r.success.Render(line)
	default:
		return line
	}
}
