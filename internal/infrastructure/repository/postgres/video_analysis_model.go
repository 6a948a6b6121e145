package postgres

import (
	"database/sql"
	"time"
)

type videoAnalysisTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	AnalysisDate time.Time      `db:"analysis_date"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Saves        int            `db:"saves"`
	Goals        int            `db:"goals"`
	RawText      sql.NullString `db:"raw_text"`
	Summary      sql.NullString `db:"summary"`
	VideoURL     sql.NullString `db:"video_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type videoAnalysisInsertModel struct {
	PublicID     string    `db:"public_id"`
	AnalysisDate time.Time `db:"analysis_date"`
	Title        string    `db:"title"`
	Description  *string   `db:"description"`
	Saves        int       `db:"saves"`
	Goals        int       `db:"goals"`
	RawText      *string   `db:"raw_text"`
	Summary      *string   `db:"summary"`
	VideoURL     *string   `db:"video_url"`
}

type videoEventTableModel struct {
	ID             int64      `db:"id"`
	VideoPublicID  string     `db:"video_public_id"`
	EventType      string     `db:"event_type"`
	EventTimestamp string     `db:"event_timestamp"`
	Description    string     `db:"description"`
	SortOrder      int        `db:"sort_order"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type videoEventInsertModel struct {
	VideoPublicID  string `db:"video_public_id"`
	EventType      string `db:"event_type"`
	EventTimestamp string `db:"event_timestamp"`
	Description    string `db:"description"`
	SortOrder      int    `db:"sort_order"`
}

type videoNoteTableModel struct {
	ID             int64      `db:"id"`
	VideoPublicID  string     `db:"video_public_id"`
	EventTimestamp string     `db:"event_timestamp"`
	Description    string     `db:"description"`
	SortOrder      int        `db:"sort_order"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type videoNoteInsertModel struct {
	VideoPublicID  string `db:"video_public_id"`
	EventTimestamp string `db:"event_timestamp"`
	Description    string `db:"description"`
	SortOrder      int    `db:"sort_order"`
}
