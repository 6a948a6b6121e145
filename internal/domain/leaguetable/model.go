package leaguetable

import (
	"fmt"
	"strings"
)

// TeamData is one league-table row. The team name identifies the row.
type TeamData struct {
	Position     int
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (t TeamData) Validate() error {
	if strings.TrimSpace(t.Team) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Played < 0 || t.Won < 0 || t.Drawn < 0 || t.Lost < 0 {
		return fmt.Errorf("match counts cannot be negative")
	}
	if t.GoalsFor < 0 || t.GoalsAgainst < 0 {
		return fmt.Errorf("goal counts cannot be negative")
	}
	return nil
}

func (t TeamData) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// PointsFor computes league points from a won/drawn record.
func PointsFor(won, drawn int) int {
	return won*3 + drawn
}
