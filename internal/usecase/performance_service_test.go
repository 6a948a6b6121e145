package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/memory"
	"github.com/glovework/keeper-stats/internal/platform/logging"
)

func newPerformanceFixture(logs []matchlog.MatchLog) (*PerformanceService, *memory.LeagueTableRepository) {
	seed := memory.SeedSettings()
	leagueRepo := memory.NewLeagueTableRepository(memory.SeedLeagueTable())
	service := NewPerformanceService(
		memory.NewMatchLogRepository(logs),
		memory.NewSettingsRepository(&seed),
		memory.NewPerformanceRepository(),
		leagueRepo,
		logging.NewNop(),
	)
	return service, leagueRepo
}

func TestPerformanceService_Recompute_SeedData(t *testing.T) {
	t.Parallel()

	service, leagueRepo := newPerformanceFixture(memory.SeedMatchLogs())

	summary, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if summary.Matches != 3 {
		t.Fatalf("expected 3 matches, got %d", summary.Matches)
	}
	if summary.TotalSaves != 16 {
		t.Fatalf("expected 16 saves, got %d", summary.TotalSaves)
	}
	if summary.TotalGoalsConceded != 3 {
		t.Fatalf("expected 3 conceded, got %d", summary.TotalGoalsConceded)
	}
	if summary.CleanSheets != 1 {
		t.Fatalf("expected 1 clean sheet, got %d", summary.CleanSheets)
	}
	// 16 / (16 + 3) = 84.21%, rounded to one decimal.
	if summary.SavePercentage != 84.2 {
		t.Fatalf("expected save percentage 84.2, got %v", summary.SavePercentage)
	}
	if summary.Won != 1 || summary.Drawn != 1 || summary.Lost != 1 {
		t.Fatalf("expected record 1-1-1, got %d-%d-%d", summary.Won, summary.Drawn, summary.Lost)
	}
	if summary.UnattributedMatches != 0 {
		t.Fatalf("expected no unattributed matches, got %d", summary.UnattributedMatches)
	}

	if len(summary.Series) != 1 {
		t.Fatalf("expected one series point, got %d", len(summary.Series))
	}
	point := summary.Series[0]
	if point.Period != "2026-03" || point.Saves != 16 || point.Conceded != 3 {
		t.Fatalf("unexpected series point: %+v", point)
	}

	// The club row in the league table follows the same pass.
	row, exists, err := leagueRepo.GetByTeam(context.Background(), memory.SeedClubTeam)
	if err != nil || !exists {
		t.Fatalf("expected club league row, exists=%v err=%v", exists, err)
	}
	if row.Played != 3 || row.Won != 1 || row.Drawn != 1 || row.Lost != 1 {
		t.Fatalf("unexpected club record: %+v", row)
	}
	if row.GoalsFor != 4 || row.GoalsAgainst != 3 {
		t.Fatalf("expected goals 4-3, got %d-%d", row.GoalsFor, row.GoalsAgainst)
	}
	if row.Points != 4 {
		t.Fatalf("expected 4 points, got %d", row.Points)
	}
	// 4 points with goal difference +1 keeps the club ahead of Eastgate on -1.
	if row.Position != 2 {
		t.Fatalf("expected position 2, got %d", row.Position)
	}
}

func TestPerformanceService_Recompute_AwayLoss(t *testing.T) {
	t.Parallel()

	logs := []matchlog.MatchLog{
		{
			ID:        "match-away-loss",
			Date:      time.Date(2026, time.April, 4, 15, 0, 0, 0, time.UTC),
			HomeTeam:  "Millbrook City",
			AwayTeam:  memory.SeedClubTeam,
			HomeScore: 2,
			AwayScore: 1,
			Saves:     6,
		},
	}
	service, _ := newPerformanceFixture(logs)

	summary, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if summary.TotalGoalsConceded != 2 {
		t.Fatalf("away club should concede the home score, got %d", summary.TotalGoalsConceded)
	}
	if summary.CleanSheets != 0 {
		t.Fatalf("expected no clean sheets, got %d", summary.CleanSheets)
	}
	if summary.Lost != 1 || summary.Won != 0 || summary.Drawn != 0 {
		t.Fatalf("expected a single loss, got %d-%d-%d", summary.Won, summary.Drawn, summary.Lost)
	}
}

func TestPerformanceService_Recompute_CleanSheetFlagDoesNotOverrideScore(t *testing.T) {
	t.Parallel()

	// The stored flag claims a clean sheet but the score line disagrees.
	logs := []matchlog.MatchLog{
		{
			ID:         "match-drifted-flag",
			Date:       time.Date(2026, time.April, 11, 15, 0, 0, 0, time.UTC),
			HomeTeam:   memory.SeedClubTeam,
			AwayTeam:   "Eastgate Albion",
			HomeScore:  3,
			AwayScore:  1,
			Saves:      2,
			CleanSheet: true,
		},
	}
	service, _ := newPerformanceFixture(logs)

	summary, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	if summary.CleanSheets != 0 {
		t.Fatalf("clean sheets must follow conceded goals, got %d", summary.CleanSheets)
	}
}

func TestPerformanceService_Recompute_UnattributedExcluded(t *testing.T) {
	t.Parallel()

	logs := []matchlog.MatchLog{
		{
			ID:        "match-other-clubs",
			Date:      time.Date(2026, time.April, 18, 15, 0, 0, 0, time.UTC),
			HomeTeam:  "Millbrook City",
			AwayTeam:  "Eastgate Albion",
			HomeScore: 4,
			AwayScore: 0,
			Saves:     9,
		},
	}
	service, _ := newPerformanceFixture(logs)

	summary, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if summary.UnattributedMatches != 1 {
		t.Fatalf("expected 1 unattributed match, got %d", summary.UnattributedMatches)
	}
	if summary.Matches != 0 || summary.TotalSaves != 0 || summary.TotalGoalsConceded != 0 {
		t.Fatalf("unattributed rows must not feed totals: %+v", summary)
	}
	if summary.SavePercentage != 0 {
		t.Fatalf("expected zero save percentage, got %v", summary.SavePercentage)
	}
}

func TestPerformanceService_Recompute_MonthlySeriesOrdered(t *testing.T) {
	t.Parallel()

	logs := []matchlog.MatchLog{
		{
			ID:        "match-feb",
			Date:      time.Date(2026, time.February, 21, 15, 0, 0, 0, time.UTC),
			HomeTeam:  memory.SeedClubTeam,
			AwayTeam:  "Harborview United",
			HomeScore: 1,
			AwayScore: 1,
			Saves:     3,
		},
		{
			ID:        "match-jan",
			Date:      time.Date(2026, time.January, 10, 15, 0, 0, 0, time.UTC),
			HomeTeam:  "Harborview United",
			AwayTeam:  memory.SeedClubTeam,
			HomeScore: 0,
			AwayScore: 2,
			Saves:     5,
		},
	}
	service, _ := newPerformanceFixture(logs)

	summary, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if len(summary.Series) != 2 {
		t.Fatalf("expected 2 series points, got %d", len(summary.Series))
	}
	if summary.Series[0].Period != "2026-01" || summary.Series[1].Period != "2026-02" {
		t.Fatalf("series must be period ordered: %+v", summary.Series)
	}
	if summary.Series[0].Saves != 5 || summary.Series[0].Conceded != 0 {
		t.Fatalf("unexpected January point: %+v", summary.Series[0])
	}
	if summary.Series[1].Saves != 3 || summary.Series[1].Conceded != 1 {
		t.Fatalf("unexpected February point: %+v", summary.Series[1])
	}
}

func TestPerformanceService_Summary_EmptyStore(t *testing.T) {
	t.Parallel()

	service, _ := newPerformanceFixture(nil)

	summary, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Matches != 0 || summary.TotalSaves != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if summary.Series == nil {
		t.Fatal("series must be an empty slice, not nil")
	}
}

func TestPerformanceService_Summary_ReturnsStoredAggregate(t *testing.T) {
	t.Parallel()

	service, _ := newPerformanceFixture(memory.SeedMatchLogs())

	want, err := service.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	got, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if got.Matches != want.Matches || got.SavePercentage != want.SavePercentage {
		t.Fatalf("stored summary diverged: got %+v want %+v", got, want)
	}
	if len(got.Series) != len(want.Series) {
		t.Fatalf("stored series diverged: got %d points want %d", len(got.Series), len(want.Series))
	}
}
