package postgres

import "time"

type leagueTableRowModel struct {
	ID           int64      `db:"id"`
	Team         string     `db:"team"`
	Position     int        `db:"position"`
	Played       int        `db:"played"`
	Won          int        `db:"won"`
	Drawn        int        `db:"drawn"`
	Lost         int        `db:"lost"`
	GoalsFor     int        `db:"goals_for"`
	GoalsAgainst int        `db:"goals_against"`
	Points       int        `db:"points"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type leagueTableInsertModel struct {
	Team         string `db:"team"`
	Position     int    `db:"position"`
	Played       int    `db:"played"`
	Won          int    `db:"won"`
	Drawn        int    `db:"drawn"`
	Lost         int    `db:"lost"`
	GoalsFor     int    `db:"goals_for"`
	GoalsAgainst int    `db:"goals_against"`
	Points       int    `db:"points"`
}
