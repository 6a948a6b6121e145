package matchlog

import "testing"

func TestResolveClubSide(t *testing.T) {
	t.Parallel()

	m := MatchLog{HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeScore: 2, AwayScore: 1}

	if got := ResolveClubSide(m, "Arsenal"); got != SideHome {
		t.Fatalf("expected home, got %s", got)
	}
	if got := ResolveClubSide(m, " chelsea "); got != SideAway {
		t.Fatalf("expected away for case-insensitive match, got %s", got)
	}
	if got := ResolveClubSide(m, "Spurs"); got != SideNone {
		t.Fatalf("expected none for uninvolved club, got %s", got)
	}
	if got := ResolveClubSide(m, ""); got != SideNone {
		t.Fatalf("expected none for empty club, got %s", got)
	}
}

func TestViewForClub_AwayLoss(t *testing.T) {
	t.Parallel()

	// Club away, 2-1 home win: club conceded 2, scored 1.
	m := MatchLog{HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeScore: 2, AwayScore: 1}

	view, ok := ViewForClub(m, "Chelsea")
	if !ok {
		t.Fatal("expected club to be resolved")
	}
	if view.Side != SideAway {
		t.Fatalf("expected away side, got %s", view.Side)
	}
	if view.GoalsConceded != 2 || view.GoalsScored != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestUpdate_Apply(t *testing.T) {
	t.Parallel()

	saves := 7
	clean := true
	m := MatchLog{ID: "m1", HomeTeam: "A", AwayTeam: "B", Saves: 3}

	got := Update{Saves: &saves, CleanSheet: &clean}.Apply(m)
	if got.Saves != 7 || !got.CleanSheet {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.HomeTeam != "A" || got.AwayTeam != "B" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}
