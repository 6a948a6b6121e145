package leaguetable

import "testing"

func TestRank_PointsThenGoalDifference(t *testing.T) {
	t.Parallel()

	rows := []TeamData{
		{Team: "City", Won: 2, Drawn: 1, Points: 7, GoalsFor: 5, GoalsAgainst: 4},
		{Team: "United", Won: 3, Drawn: 1, Points: 10, GoalsFor: 8, GoalsAgainst: 2},
		{Team: "Rovers", Won: 2, Drawn: 1, Points: 7, GoalsFor: 9, GoalsAgainst: 3},
		{Team: "Albion", Won: 0, Drawn: 1, Points: 1, GoalsFor: 1, GoalsAgainst: 9},
	}

	ranked := Rank(rows)

	wantOrder := []string{"United", "Rovers", "City", "Albion"}
	for i, want := range wantOrder {
		if ranked[i].Team != want {
			t.Fatalf("rank %d: expected %s, got %s", i+1, want, ranked[i].Team)
		}
	}
	for i, row := range ranked {
		if row.Position != i+1 {
			t.Fatalf("expected dense positions, got %d at index %d", row.Position, i)
		}
	}
	// Input must be untouched.
	if rows[0].Team != "City" || rows[0].Position != 0 {
		t.Fatalf("input slice was mutated: %+v", rows[0])
	}
}

func TestRank_DensePositionsNoGapsOrDuplicates(t *testing.T) {
	t.Parallel()

	rows := []TeamData{
		{Team: "A", Points: 4, GoalsFor: 2, GoalsAgainst: 2},
		{Team: "B", Points: 4, GoalsFor: 2, GoalsAgainst: 2},
		{Team: "C", Points: 4, GoalsFor: 2, GoalsAgainst: 2},
	}

	ranked := Rank(rows)
	seen := map[int]bool{}
	for _, row := range ranked {
		if row.Position < 1 || row.Position > len(rows) {
			t.Fatalf("position out of range: %d", row.Position)
		}
		if seen[row.Position] {
			t.Fatalf("duplicate position %d", row.Position)
		}
		seen[row.Position] = true
	}
}

func TestPointsFor(t *testing.T) {
	t.Parallel()

	if got := PointsFor(3, 1); got != 10 {
		t.Fatalf("PointsFor(3,1)=%d, want 10", got)
	}
	if got := PointsFor(0, 0); got != 0 {
		t.Fatalf("PointsFor(0,0)=%d, want 0", got)
	}
}
