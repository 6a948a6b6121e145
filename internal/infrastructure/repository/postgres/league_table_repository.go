package postgres

import (
	"context"
	"fmt"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	qb "github.com/glovework/keeper-stats/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueTableRepository struct {
	db *sqlx.DB
}

func NewLeagueTableRepository(db *sqlx.DB) *LeagueTableRepository {
	return &LeagueTableRepository{db: db}
}

func (r *LeagueTableRepository) List(ctx context.Context) ([]leaguetable.TeamData, error) {
	query, args, err := qb.Select("*").From("league_table").
		Where(qb.IsNull("deleted_at")).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league table query: %w", err)
	}

	var rows []leagueTableRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league table: %w", err)
	}

	out := make([]leaguetable.TeamData, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueTableFromRow(row))
	}
	return out, nil
}

func (r *LeagueTableRepository) GetByTeam(ctx context.Context, team string) (leaguetable.TeamData, bool, error) {
	query, args, err := qb.Select("*").From("league_table").
		Where(
			qb.Eq("team", team),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return leaguetable.TeamData{}, false, fmt.Errorf("build get league table row query: %w", err)
	}

	var row leagueTableRowModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaguetable.TeamData{}, false, nil
		}
		return leaguetable.TeamData{}, false, fmt.Errorf("get league table row: %w", err)
	}

	return leagueTableFromRow(row), true, nil
}

func (r *LeagueTableRepository) Insert(ctx context.Context, row leaguetable.TeamData) error {
	query, args, err := qb.InsertModel("league_table", leagueTableToInsertModel(row), "")
	if err != nil {
		return fmt.Errorf("build insert league table row query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert league table row: %w", err)
	}
	return nil
}

func (r *LeagueTableRepository) Update(ctx context.Context, row leaguetable.TeamData) error {
	query, args, err := qb.Update("league_table").
		Set("position", row.Position).
		Set("played", row.Played).
		Set("won", row.Won).
		Set("drawn", row.Drawn).
		Set("lost", row.Lost).
		Set("goals_for", row.GoalsFor).
		Set("goals_against", row.GoalsAgainst).
		Set("points", row.Points).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team", row.Team),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league table row query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league table row: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update league table row: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update league table row: not found")
	}
	return nil
}

func (r *LeagueTableRepository) Delete(ctx context.Context, team string) error {
	query, args, err := qb.Update("league_table").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("team", team),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete league table row query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete league table row: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete league table row: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete league table row: not found")
	}
	return nil
}

// Replace swaps the whole table: soft-deletes every live row, then inserts
// the ranked rows in one transaction.
func (r *LeagueTableRepository) Replace(ctx context.Context, rows []leaguetable.TeamData) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace league table: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("league_table").
		SetExpr("deleted_at", "NOW()").
		Where(qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear league table query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear league table: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("league_table", leagueTableToInsertModel(row), "")
		if err != nil {
			return fmt.Errorf("build replace league table row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("replace league table row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace league table tx: %w", err)
	}
	return nil
}

func leagueTableFromRow(row leagueTableRowModel) leaguetable.TeamData {
	return leaguetable.TeamData{
		Position:     row.Position,
		Team:         row.Team,
		Played:       row.Played,
		Won:          row.Won,
		Drawn:        row.Drawn,
		Lost:         row.Lost,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		Points:       row.Points,
	}
}

func leagueTableToInsertModel(row leaguetable.TeamData) leagueTableInsertModel {
	return leagueTableInsertModel{
		Team:         row.Team,
		Position:     row.Position,
		Played:       row.Played,
		Won:          row.Won,
		Drawn:        row.Drawn,
		Lost:         row.Lost,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		Points:       row.Points,
	}
}
