package game

import "fmt"

// Attacker point thresholds.
const (
	defendersBigWin    = 40
	attackersWin       = 80
	attackersPlusOne   = 120
	attackersPlusTwo   = 160
	attackersPlusThree = 200
)

// Outcome is the scored result of a round.
type Outcome struct {
	AttackerPoints int
	AttackersWin   bool
	// WinnerTeam is the team that won the round; it is also the team that
	// levels up, if anyone does.
	WinnerTeam    int
	LevelingTeam  int
	LevelDelta    int
	DefendingTeam int
	AttackingTeam int
}

// ComputeOutcome scores a round from the attackers' points.
func ComputeOutcome(attackerPoints, defendingTeam int) Outcome {
	o := Outcome{
		AttackerPoints: attackerPoints,
		DefendingTeam:  defendingTeam,
		AttackingTeam:  1 - defendingTeam,
	}

	switch {
	case attackerPoints < defendersBigWin:
		o.LevelDelta = 2
	case attackerPoints < attackersWin:
		o.LevelDelta = 1
	case attackerPoints < attackersPlusOne:
		o.AttackersWin = true
	case attackerPoints < attackersPlusTwo:
		o.AttackersWin, o.LevelDelta = true, 1
	case attackerPoints < attackersPlusThree:
		o.AttackersWin, o.LevelDelta = true, 2
	default:
		o.AttackersWin, o.LevelDelta = true, 3
	}

	o.WinnerTeam = o.DefendingTeam
	if o.AttackersWin {
		o.WinnerTeam = o.AttackingTeam
	}
	o.LevelingTeam = o.WinnerTeam
	return o
}

// Summary is a one-line description of the outcome.
func (o Outcome) Summary() string {
	switch {
	case !o.AttackersWin:
		return fmt.Sprintf("Defenders hold with attackers on %d points, team %d +%d", o.AttackerPoints, o.DefendingTeam, o.LevelDelta)
	case o.LevelDelta == 0:
		return fmt.Sprintf("Attackers win with %d points, roles switch", o.AttackerPoints)
	default:
		return fmt.Sprintf("Attackers win with %d points, team %d +%d", o.AttackerPoints, o.AttackingTeam, o.LevelDelta)
	}
}
