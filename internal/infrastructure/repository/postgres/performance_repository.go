package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/performance"
	jsoniter "github.com/json-iterator/go"
	qb "github.com/glovework/keeper-stats/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type performanceTableModel struct {
	ID                  int64     `db:"id"`
	Matches             int       `db:"matches"`
	TotalSaves          int       `db:"total_saves"`
	TotalGoalsConceded  int       `db:"total_goals_conceded"`
	CleanSheets         int       `db:"clean_sheets"`
	SavePercentage      float64   `db:"save_percentage"`
	Won                 int       `db:"won"`
	Drawn               int       `db:"drawn"`
	Lost                int       `db:"lost"`
	UnattributedMatches int       `db:"unattributed_matches"`
	SeriesJSON          string    `db:"series_json"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type performanceInsertModel struct {
	ID                  int64   `db:"id"`
	Matches             int     `db:"matches"`
	TotalSaves          int     `db:"total_saves"`
	TotalGoalsConceded  int     `db:"total_goals_conceded"`
	CleanSheets         int     `db:"clean_sheets"`
	SavePercentage      float64 `db:"save_percentage"`
	Won                 int     `db:"won"`
	Drawn               int     `db:"drawn"`
	Lost                int     `db:"lost"`
	UnattributedMatches int     `db:"unattributed_matches"`
	SeriesJSON          string  `db:"series_json"`
}

// PerformanceRepository stores the single derived summary row (id = 1),
// replaced wholly on every aggregator pass. The monthly series is a JSON
// column since it is only ever read back as a unit.
type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Get(ctx context.Context) (performance.Summary, bool, error) {
	query, args, err := qb.Select("*").From("performance_summary").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return performance.Summary{}, false, fmt.Errorf("build get performance summary query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return performance.Summary{}, false, nil
		}
		return performance.Summary{}, false, fmt.Errorf("get performance summary: %w", err)
	}

	var series []performance.SeriesPoint
	if row.SeriesJSON != "" {
		if err := jsoniter.UnmarshalFromString(row.SeriesJSON, &series); err != nil {
			return performance.Summary{}, false, fmt.Errorf("decode performance series: %w", err)
		}
	}

	return performance.Summary{
		Matches:             row.Matches,
		TotalSaves:          row.TotalSaves,
		TotalGoalsConceded:  row.TotalGoalsConceded,
		CleanSheets:         row.CleanSheets,
		SavePercentage:      row.SavePercentage,
		Won:                 row.Won,
		Drawn:               row.Drawn,
		Lost:                row.Lost,
		UnattributedMatches: row.UnattributedMatches,
		Series:              series,
	}, true, nil
}

func (r *PerformanceRepository) Replace(ctx context.Context, summary performance.Summary) error {
	series := summary.Series
	if series == nil {
		series = []performance.SeriesPoint{}
	}
	seriesJSON, err := jsoniter.MarshalToString(series)
	if err != nil {
		return fmt.Errorf("encode performance series: %w", err)
	}

	insertModel := performanceInsertModel{
		ID:                  1,
		Matches:             summary.Matches,
		TotalSaves:          summary.TotalSaves,
		TotalGoalsConceded:  summary.TotalGoalsConceded,
		CleanSheets:         summary.CleanSheets,
		SavePercentage:      summary.SavePercentage,
		Won:                 summary.Won,
		Drawn:               summary.Drawn,
		Lost:                summary.Lost,
		UnattributedMatches: summary.UnattributedMatches,
		SeriesJSON:          seriesJSON,
	}
	query, args, err := qb.InsertModel("performance_summary", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    matches = EXCLUDED.matches,
    total_saves = EXCLUDED.total_saves,
    total_goals_conceded = EXCLUDED.total_goals_conceded,
    clean_sheets = EXCLUDED.clean_sheets,
    save_percentage = EXCLUDED.save_percentage,
    won = EXCLUDED.won,
    drawn = EXCLUDED.drawn,
    lost = EXCLUDED.lost,
    unattributed_matches = EXCLUDED.unattributed_matches,
    series_json = EXCLUDED.series_json,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build replace performance summary query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace performance summary: %w", err)
	}
	return nil
}
