package scoring

import (
	"sort"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// Bounds shared by answers, correct answers and team points
const (
	MinValue      = 0
	MaxValue      = 100
	InitialPoints = 100
)

// Palette is the round-robin color set for new teams
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

// Clamp limits v to [MinValue, MaxValue]
func Clamp(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// Difference is the penalty for a guess: |clamp(answer) - correct|
func Difference(answer, correct int) int {
	d := Clamp(answer) - correct
	if d < 0 {
		return -d
	}
	return d
}

// Deduct subtracts difference from points, flooring at zero
func Deduct(points, difference int) int {
	if points-difference < 0 {
		return 0
	}
	return points - difference
}

// ColorFor picks the palette color for the n-th team (0-based) of a game
func ColorFor(teamCount int) string {
	if teamCount < 0 {
		teamCount = 0
	}
	return Palette[teamCount%len(Palette)]
}

// RankTeams orders teams by points descending, keeping input order among
// ties, and numbers them 1..n. Tied teams get distinct consecutive ranks.
func RankTeams(teams []models.Team) []models.Standing {
	sorted := make([]models.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	standings := make([]models.Standing, len(sorted))
	for i, t := range sorted {
		standings[i] = models.Standing{
			ID:     t.ID,
			Name:   t.Name,
			Points: t.Points,
			Color:  t.Color,
			Rank:   i + 1,
		}
	}
	return standings
}
