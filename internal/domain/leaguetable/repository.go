package leaguetable

import "context"

// Repository exposes league-table row persistence.
type Repository interface {
	List(ctx context.Context) ([]TeamData, error)
	GetByTeam(ctx context.Context, team string) (TeamData, bool, error)
	Insert(ctx context.Context, row TeamData) error
	Update(ctx context.Context, row TeamData) error
	Delete(ctx context.Context, team string) error
	// Replace swaps the whole table in one transaction; used after ranking.
	Replace(ctx context.Context, rows []TeamData) error
}
