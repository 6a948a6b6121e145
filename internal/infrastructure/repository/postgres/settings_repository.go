package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/settings"
	qb "github.com/glovework/keeper-stats/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type settingsTableModel struct {
	ID        int64     `db:"id"`
	ClubTeam  string    `db:"club_team"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type settingsInsertModel struct {
	ID       int64  `db:"id"`
	ClubTeam string `db:"club_team"`
}

// SettingsRepository stores the single dashboard settings row (id = 1).
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.UserSettings, bool, error) {
	query, args, err := qb.Select("*").From("user_settings").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return settings.UserSettings{}, false, fmt.Errorf("build get settings query: %w", err)
	}

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.UserSettings{}, false, nil
		}
		return settings.UserSettings{}, false, fmt.Errorf("get settings: %w", err)
	}

	return settings.UserSettings{ClubTeam: row.ClubTeam}, true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.UserSettings) error {
	insertModel := settingsInsertModel{ID: 1, ClubTeam: s.ClubTeam}
	query, args, err := qb.InsertModel("user_settings", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    club_team = EXCLUDED.club_team,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build save settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
