package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/domain/performance"
	"github.com/glovework/keeper-stats/internal/domain/settings"
	"github.com/glovework/keeper-stats/internal/platform/logging"
)

// PerformanceService derives the dashboard summary and keeps the club's
// league-table row in step with the match logs. Everything is recomputed
// from scratch on each pass; nothing is patched incrementally.
type PerformanceService struct {
	matchLogRepo    matchlog.Repository
	settingsRepo    settings.Repository
	performanceRepo performance.Repository
	leagueTableRepo leaguetable.Repository
	logger          *logging.Logger
}

func NewPerformanceService(
	matchLogRepo matchlog.Repository,
	settingsRepo settings.Repository,
	performanceRepo performance.Repository,
	leagueTableRepo leaguetable.Repository,
	logger *logging.Logger,
) *PerformanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PerformanceService{
		matchLogRepo:    matchLogRepo,
		settingsRepo:    settingsRepo,
		performanceRepo: performanceRepo,
		leagueTableRepo: leagueTableRepo,
		logger:          logger,
	}
}

// Summary returns the stored aggregate, or a zero summary when none has
// been computed yet.
func (s *PerformanceService) Summary(ctx context.Context) (performance.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "PerformanceService.Summary")
	defer span.End()

	summary, exists, err := s.performanceRepo.Get(ctx)
	if err != nil {
		return performance.Summary{}, fmt.Errorf("get performance summary: %w", err)
	}
	if !exists {
		return performance.Summary{Series: []performance.SeriesPoint{}}, nil
	}
	if summary.Series == nil {
		summary.Series = []performance.SeriesPoint{}
	}
	return summary, nil
}

// Recompute rebuilds the summary row and the club's league-table row from
// every live match log, then re-ranks the table.
func (s *PerformanceService) Recompute(ctx context.Context) (performance.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "PerformanceService.Recompute")
	defer span.End()

	cfg, _, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return performance.Summary{}, fmt.Errorf("get settings: %w", err)
	}

	logs, err := s.matchLogRepo.List(ctx)
	if err != nil {
		return performance.Summary{}, fmt.Errorf("list match logs: %w", err)
	}

	summary, goalsFor := aggregate(logs, cfg.ClubTeam)

	if err := s.performanceRepo.Replace(ctx, summary); err != nil {
		return performance.Summary{}, fmt.Errorf("replace performance summary: %w", err)
	}

	if err := s.syncLeagueTable(ctx, cfg.ClubTeam, summary, goalsFor); err != nil {
		return performance.Summary{}, err
	}

	s.logger.InfoContext(ctx, "performance recomputed",
		"matches", summary.Matches,
		"save_percentage", summary.SavePercentage,
		"unattributed", summary.UnattributedMatches,
	)
	return summary, nil
}

func aggregate(logs []matchlog.MatchLog, clubTeam string) (performance.Summary, int) {
	summary := performance.Summary{Series: []performance.SeriesPoint{}}
	byMonth := make(map[string]*performance.SeriesPoint, 12)
	goalsFor := 0

	for _, m := range logs {
		view, attributed := matchlog.ViewForClub(m, clubTeam)
		if !attributed {
			summary.UnattributedMatches++
			continue
		}

		goalsFor += view.GoalsScored
		summary.Matches++
		summary.TotalSaves += m.Saves
		summary.TotalGoalsConceded += view.GoalsConceded
		// Clean sheets count from conceded goals, not the stored flag; the
		// flag is user input and can drift from the score line.
		if view.GoalsConceded == 0 {
			summary.CleanSheets++
		}
		switch {
		case view.GoalsScored > view.GoalsConceded:
			summary.Won++
		case view.GoalsScored == view.GoalsConceded:
			summary.Drawn++
		default:
			summary.Lost++
		}

		period := m.Date.Format("2006-01")
		point, ok := byMonth[period]
		if !ok {
			point = &performance.SeriesPoint{Period: period}
			byMonth[period] = point
		}
		point.Saves += m.Saves
		point.Conceded += view.GoalsConceded
	}

	summary.SavePercentage = performance.SavePercentage(summary.TotalSaves, summary.TotalGoalsConceded)

	periods := make([]string, 0, len(byMonth))
	for period := range byMonth {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	for _, period := range periods {
		summary.Series = append(summary.Series, *byMonth[period])
	}

	return summary, goalsFor
}

// syncLeagueTable rewrites the club's row from the recomputed record and
// re-ranks the whole table. No configured club or no table row is fine;
// the summary alone still updates.
func (s *PerformanceService) syncLeagueTable(ctx context.Context, clubTeam string, summary performance.Summary, goalsFor int) error {
	row, exists, err := s.leagueTableRepo.GetByTeam(ctx, clubTeam)
	if err != nil {
		return fmt.Errorf("get club league row: %w", err)
	}
	if !exists {
		return nil
	}

	row.Played = summary.Matches
	row.Won = summary.Won
	row.Drawn = summary.Drawn
	row.Lost = summary.Lost
	row.GoalsFor = goalsFor
	row.GoalsAgainst = summary.TotalGoalsConceded
	row.Points = leaguetable.PointsFor(summary.Won, summary.Drawn)
	if err := s.leagueTableRepo.Update(ctx, row); err != nil {
		return fmt.Errorf("update club league row: %w", err)
	}

	rows, err := s.leagueTableRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list league table: %w", err)
	}
	if err := s.leagueTableRepo.Replace(ctx, leaguetable.Rank(rows)); err != nil {
		return fmt.Errorf("replace ranked league table: %w", err)
	}
	return nil
}
