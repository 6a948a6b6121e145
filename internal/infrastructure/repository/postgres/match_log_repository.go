package postgres

import (
	"context"
	"fmt"

	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	qb "github.com/glovework/keeper-stats/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type MatchLogRepository struct {
	db *sqlx.DB
}

func NewMatchLogRepository(db *sqlx.DB) *MatchLogRepository {
	return &MatchLogRepository{db: db}
}

func (r *MatchLogRepository) List(ctx context.Context) ([]matchlog.MatchLog, error) {
	query, args, err := qb.Select("*").From("match_logs").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match logs query: %w", err)
	}

	var rows []matchLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match logs: %w", err)
	}

	out := make([]matchlog.MatchLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchLogFromRow(row))
	}
	return out, nil
}

func (r *MatchLogRepository) GetByID(ctx context.Context, id string) (matchlog.MatchLog, bool, error) {
	query, args, err := qb.Select("*").From("match_logs").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return matchlog.MatchLog{}, false, fmt.Errorf("build get match log by id query: %w", err)
	}

	var row matchLogTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchlog.MatchLog{}, false, nil
		}
		return matchlog.MatchLog{}, false, fmt.Errorf("get match log by id: %w", err)
	}

	return matchLogFromRow(row), true, nil
}

func (r *MatchLogRepository) Insert(ctx context.Context, item matchlog.MatchLog) error {
	insertModel := matchLogInsertModel{
		PublicID:   item.ID,
		MatchDate:  item.Date,
		HomeTeam:   item.HomeTeam,
		AwayTeam:   item.AwayTeam,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Venue:      nullableString(item.Venue),
		Saves:      item.Saves,
		CleanSheet: item.CleanSheet,
		Notes:      nullableString(item.Notes),
	}
	query, args, err := qb.InsertModel("match_logs", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert match log query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match log: %w", err)
	}

	return nil
}

func (r *MatchLogRepository) Update(ctx context.Context, item matchlog.MatchLog) error {
	query, args, err := qb.Update("match_logs").
		Set("match_date", item.Date).
		Set("home_team", item.HomeTeam).
		Set("away_team", item.AwayTeam).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("venue", nullableString(item.Venue)).
		Set("saves", item.Saves).
		Set("clean_sheet", item.CleanSheet).
		Set("notes", nullableString(item.Notes)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match log query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match log: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match log: not found")
	}

	return nil
}

func (r *MatchLogRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("match_logs").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete match log query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete match log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete match log: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete match log: not found")
	}

	return nil
}

func matchLogFromRow(row matchLogTableModel) matchlog.MatchLog {
	return matchlog.MatchLog{
		ID:         row.PublicID,
		Date:       row.MatchDate,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Venue:      row.Venue.String,
		Saves:      row.Saves,
		CleanSheet: row.CleanSheet,
		Notes:      row.Notes.String,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	v := value
	return &v
}
