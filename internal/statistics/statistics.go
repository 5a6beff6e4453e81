package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is what the statistics keep from one scored round
type RoundResult struct {
	AttackerPoints int  // Attacking team's final score, kitty bonus included
	AttackersWin   bool // Attackers reached the winning threshold
	WinnerTeam     int
	LevelDelta     int  // Levels gained by the winning team
	Declarer       int  // Seat that buried the kitty
	Declared       bool // Someone declared during the deal
	KittyPoints    int  // Kitty bonus awarded with the last trick
	Fallbacks      int  // Agent answers the engine replaced
}

// SeatStats tracks rounds by the declarer's seat
type SeatStats struct {
	Rounds    int
	SumPoints float64
	Holds     int
}

// Statistics aggregates round results. Attacker points are the sample the
// mean, spread and percentiles are computed over.
type Statistics struct {
	Rounds     int
	SumPoints  float64
	SumPoints2 float64   // Sum of squares for variance calculation
	Values     []float64 // All samples for median/percentile calculation

	AttackerWins  int
	DefenderHolds int
	TeamWins      [2]int
	LevelsGained  [2]int
	// LevelDeltas counts rounds by levels gained (0 to 3)
	LevelDeltas [4]int

	DeclaredRounds int
	KittyPoints    int
	MaxKitty       int
	Fallbacks      int

	SeatResults [4]SeatStats
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	points := float64(result.AttackerPoints)
	s.Rounds++
	s.SumPoints += points
	s.SumPoints2 += points * points
	s.Values = append(s.Values, points)

	if result.AttackersWin {
		s.AttackerWins++
	} else {
		s.DefenderHolds++
	}
	if result.WinnerTeam == 0 || result.WinnerTeam == 1 {
		s.TeamWins[result.WinnerTeam]++
		s.LevelsGained[result.WinnerTeam] += result.LevelDelta
	}
	if result.LevelDelta >= 0 && result.LevelDelta < len(s.LevelDeltas) {
		s.LevelDeltas[result.LevelDelta]++
	}

	if result.Declared {
		s.DeclaredRounds++
	}
	s.KittyPoints += result.KittyPoints
	s.MaxKitty = max(s.MaxKitty, result.KittyPoints)
	s.Fallbacks += result.Fallbacks

	if seat := result.Declarer; seat >= 0 && seat < len(s.SeatResults) {
		s.SeatResults[seat].Rounds++
		s.SeatResults[seat].SumPoints += points
		if !result.AttackersWin {
			s.SeatResults[seat].Holds++
		}
	}
}

// Merge folds other into s. Values are appended in other's order.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumPoints += other.SumPoints
	s.SumPoints2 += other.SumPoints2
	s.Values = append(s.Values, other.Values...)
	s.AttackerWins += other.AttackerWins
	s.DefenderHolds += other.DefenderHolds
	for i := range s.TeamWins {
		s.TeamWins[i] += other.TeamWins[i]
		s.LevelsGained[i] += other.LevelsGained[i]
	}
	for i := range s.LevelDeltas {
		s.LevelDeltas[i] += other.LevelDeltas[i]
	}
	s.DeclaredRounds += other.DeclaredRounds
	s.KittyPoints += other.KittyPoints
	s.MaxKitty = max(s.MaxKitty, other.MaxKitty)
	s.Fallbacks += other.Fallbacks
	for i := range s.SeatResults {
		s.SeatResults[i].Rounds += other.SeatResults[i].Rounds
		s.SeatResults[i].SumPoints += other.SeatResults[i].SumPoints
		s.SeatResults[i].Holds += other.SeatResults[i].Holds
	}
}

// Mean returns the mean attacker points per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumPoints / float64(s.Rounds)
}

// Variance returns the sample variance of attacker points
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPoints2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median attacker points
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// AttackerWinRate is the fraction of rounds the attackers won
func (s *Statistics) AttackerWinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.AttackerWins) / float64(s.Rounds)
}

// SeatMean returns the mean attacker points in rounds where seat buried
// the kitty.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatResults) {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Rounds == 0 {
		return 0
	}
	return ss.SumPoints / float64(ss.Rounds)
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.AttackerWins+s.DefenderHolds != s.Rounds {
		return fmt.Errorf("wins (%d) and holds (%d) do not add up to %d rounds", s.AttackerWins, s.DefenderHolds, s.Rounds)
	}
	if s.TeamWins[0]+s.TeamWins[1] != s.Rounds {
		return fmt.Errorf("team wins %v do not add up to %d rounds", s.TeamWins, s.Rounds)
	}

	seatRounds := 0
	for _, ss := range s.SeatResults {
		seatRounds += ss.Rounds
	}
	if seatRounds != s.Rounds {
		return fmt.Errorf("seat rounds total (%d) does not match total rounds (%d)", seatRounds, s.Rounds)
	}
	return nil
}
