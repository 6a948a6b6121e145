package postgres

import (
	"context"
	"fmt"

	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	qb "github.com/glovework/keeper-stats/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// VideoAnalysisRepository persists the analysis parent row plus its event
// and per-type note child tables in one transaction.
type VideoAnalysisRepository struct {
	db *sqlx.DB
}

func NewVideoAnalysisRepository(db *sqlx.DB) *VideoAnalysisRepository {
	return &VideoAnalysisRepository{db: db}
}

func (r *VideoAnalysisRepository) List(ctx context.Context) ([]videoanalysis.VideoAnalysis, error) {
	query, args, err := qb.Select("*").From("video_analyses").
		Where(qb.IsNull("deleted_at")).
		OrderBy("analysis_date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select video analyses query: %w", err)
	}

	var rows []videoAnalysisTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select video analyses: %w", err)
	}

	out := make([]videoanalysis.VideoAnalysis, 0, len(rows))
	for _, row := range rows {
		item, err := r.hydrateChildren(ctx, videoAnalysisFromRow(row))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *VideoAnalysisRepository) GetByID(ctx context.Context, id string) (videoanalysis.VideoAnalysis, bool, error) {
	query, args, err := qb.Select("*").From("video_analyses").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return videoanalysis.VideoAnalysis{}, false, fmt.Errorf("build get video analysis by id query: %w", err)
	}

	var row videoAnalysisTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return videoanalysis.VideoAnalysis{}, false, nil
		}
		return videoanalysis.VideoAnalysis{}, false, fmt.Errorf("get video analysis by id: %w", err)
	}

	item, err := r.hydrateChildren(ctx, videoAnalysisFromRow(row))
	if err != nil {
		return videoanalysis.VideoAnalysis{}, false, err
	}
	return item, true, nil
}

func (r *VideoAnalysisRepository) Insert(ctx context.Context, item videoanalysis.VideoAnalysis) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert video analysis: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := videoAnalysisInsertModel{
		PublicID:     item.ID,
		AnalysisDate: item.Date,
		Title:        item.Title,
		Description:  nullableString(item.Description),
		Saves:        item.Saves,
		Goals:        item.Goals,
		RawText:      nullableString(item.Result.RawText),
		Summary:      nullableString(item.Result.Summary),
		VideoURL:     nullableString(item.Result.VideoURL),
	}
	query, args, err := qb.InsertModel("video_analyses", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert video analysis query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert video analysis: %w", err)
	}

	for i, event := range item.Result.Events {
		eventModel := videoEventInsertModel{
			VideoPublicID:  item.ID,
			EventType:      event.Type,
			EventTimestamp: event.Timestamp,
			Description:    event.Description,
			SortOrder:      i,
		}
		eventQuery, eventArgs, err := qb.InsertModel("video_analysis_events", eventModel, "")
		if err != nil {
			return fmt.Errorf("build insert video analysis event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, eventQuery, eventArgs...); err != nil {
			return fmt.Errorf("insert video analysis event: %w", err)
		}
	}

	if err := insertNotes(ctx, tx, "video_analysis_saves", item.ID, item.SaveNotes); err != nil {
		return err
	}
	if err := insertNotes(ctx, tx, "video_analysis_goals", item.ID, item.GoalNotes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert video analysis tx: %w", err)
	}

	return nil
}

func (r *VideoAnalysisRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx soft delete video analysis: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Children first so a failed parent delete leaves nothing orphaned.
	for _, table := range []string{"video_analysis_events", "video_analysis_saves", "video_analysis_goals"} {
		childQuery, childArgs, err := qb.Update(table).
			SetExpr("deleted_at", "NOW()").
			Where(
				qb.Eq("video_public_id", id),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build soft delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, childQuery, childArgs...); err != nil {
			return fmt.Errorf("soft delete %s: %w", table, err)
		}
	}

	parentQuery, parentArgs, err := qb.Update("video_analyses").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete video analysis query: %w", err)
	}
	result, err := tx.ExecContext(ctx, parentQuery, parentArgs...)
	if err != nil {
		return fmt.Errorf("soft delete video analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete video analysis: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete video analysis: not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit soft delete video analysis tx: %w", err)
	}

	return nil
}

func (r *VideoAnalysisRepository) hydrateChildren(ctx context.Context, item videoanalysis.VideoAnalysis) (videoanalysis.VideoAnalysis, error) {
	eventQuery, eventArgs, err := qb.Select("*").From("video_analysis_events").
		Where(
			qb.Eq("video_public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("sort_order", "id").
		ToSQL()
	if err != nil {
		return item, fmt.Errorf("build select video analysis events query: %w", err)
	}

	var eventRows []videoEventTableModel
	if err := r.db.SelectContext(ctx, &eventRows, eventQuery, eventArgs...); err != nil {
		return item, fmt.Errorf("select video analysis events: %w", err)
	}
	events := make([]videoanalysis.Event, 0, len(eventRows))
	for _, row := range eventRows {
		events = append(events, videoanalysis.Event{
			Type:        row.EventType,
			Timestamp:   row.EventTimestamp,
			Description: row.Description,
		})
	}
	item.Result.Events = events

	saves, err := r.selectNotes(ctx, "video_analysis_saves", item.ID)
	if err != nil {
		return item, err
	}
	goals, err := r.selectNotes(ctx, "video_analysis_goals", item.ID)
	if err != nil {
		return item, err
	}
	item.SaveNotes = saves
	item.GoalNotes = goals

	return item, nil
}

func (r *VideoAnalysisRepository) selectNotes(ctx context.Context, table, videoID string) ([]videoanalysis.TimedNote, error) {
	query, args, err := qb.Select("*").From(table).
		Where(
			qb.Eq("video_public_id", videoID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	var rows []videoNoteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	out := make([]videoanalysis.TimedNote, 0, len(rows))
	for _, row := range rows {
		out = append(out, videoanalysis.TimedNote{
			Timestamp:   row.EventTimestamp,
			Description: row.Description,
		})
	}
	return out, nil
}

func insertNotes(ctx context.Context, tx *sqlx.Tx, table, videoID string, notes []videoanalysis.TimedNote) error {
	for i, note := range notes {
		noteModel := videoNoteInsertModel{
			VideoPublicID:  videoID,
			EventTimestamp: note.Timestamp,
			Description:    note.Description,
			SortOrder:      i,
		}
		query, args, err := qb.InsertModel(table, noteModel, "")
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func videoAnalysisFromRow(row videoAnalysisTableModel) videoanalysis.VideoAnalysis {
	return videoanalysis.VideoAnalysis{
		ID:          row.PublicID,
		Date:        row.AnalysisDate,
		Title:       row.Title,
		Description: row.Description.String,
		Saves:       row.Saves,
		Goals:       row.Goals,
		Result: videoanalysis.Result{
			Saves:    row.Saves,
			Goals:    row.Goals,
			RawText:  row.RawText.String,
			Summary:  row.Summary.String,
			VideoURL: row.VideoURL.String,
		},
		CreatedAt: row.CreatedAt,
	}
}
