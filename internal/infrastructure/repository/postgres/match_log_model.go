package postgres

import (
	"database/sql"
	"time"
)

type matchLogTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	MatchDate  time.Time      `db:"match_date"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	HomeScore  int            `db:"home_score"`
	AwayScore  int            `db:"away_score"`
	Venue      sql.NullString `db:"venue"`
	Saves      int            `db:"saves"`
	CleanSheet bool           `db:"clean_sheet"`
	Notes      sql.NullString `db:"notes"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type matchLogInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchDate  time.Time `db:"match_date"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	Venue      *string   `db:"venue"`
	Saves      int       `db:"saves"`
	CleanSheet bool      `db:"clean_sheet"`
	Notes      *string   `db:"notes"`
}
