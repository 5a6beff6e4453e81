package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/tuolaji/internal/deck"
)

// Match carries team levels and seat roles from one round to the next.
type Match struct {
	Levels        [2]deck.Rank
	DefendingTeam int
	// KittySeat is the seat that buries the kitty if nobody declares.
	KittySeat int
	Rounds    int
}

// NewMatch starts both teams at level start with kittySeat's team
// defending.
func NewMatch(start deck.Rank, kittySeat int) *Match {
	if !start.Valid() {
		panic(fmt.Sprintf("invalid start level %d", start))
	}
	checkSeat(kittySeat)
	return &Match{
		Levels:        [2]deck.Rank{start, start},
		DefendingTeam: TeamOf(kittySeat),
		KittySeat:     kittySeat,
	}
}

// TrumpRank is the next round's trump rank: the defending team's level.
func (m *Match) TrumpRank() deck.Rank {
	return m.Levels[m.DefendingTeam]
}

// NewRound creates the next round of the match. Extra options are applied
// after the match's own.
func (m *Match) NewRound(rng *rand.Rand, opts ...RoundOption) *Round {
	base := []RoundOption{WithTrumpRank(m.TrumpRank()), WithDeclarer(m.KittySeat)}
	return NewRound(rng, append(base, opts...)...)
}

// Apply advances the match past a scored round whose kitty was buried by
// declarer. The leveling team climbs by the outcome's delta, capped at Ace.
// If the defenders held, they keep defending and the kitty passes to the
// declarer's partner; otherwise the attackers take over defence and the
// kitty passes to the seat after the declarer.
func (m *Match) Apply(o Outcome, declarer int) {
	checkSeat(declarer)

	if o.LevelDelta > 0 {
		m.Levels[o.LevelingTeam] = min(m.Levels[o.LevelingTeam]+deck.Rank(o.LevelDelta), deck.Ace)
	}

	if o.AttackersWin {
		m.DefendingTeam = o.AttackingTeam
		m.KittySeat = (declarer + 1) % Players
	} else {
		m.DefendingTeam = o.DefendingTeam
		m.KittySeat = Partner(declarer)
	}
	m.Rounds++
}

// ApplyRound is Apply for a round in the Scoring phase.
func (m *Match) ApplyRound(r *Round) Outcome {
	if r.Phase() != Scoring {
		panic(fmt.Sprintf("apply round in %s phase", r.Phase()))
	}
	o := r.Outcome()
	m.Apply(o, r.Declarer())
	return o
}

func (m *Match) String() string {
	return fmt.Sprintf("Match(round=%d, levels=%s/%s, defending=%d, kitty=%d)",
		m.Rounds, m.Levels[0], m.Levels[1], m.DefendingTeam, m.KittySeat)
}
