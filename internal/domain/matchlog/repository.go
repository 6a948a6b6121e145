package matchlog

import "context"

// Repository describes match-log persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]MatchLog, error)
	GetByID(ctx context.Context, id string) (MatchLog, bool, error)
	Insert(ctx context.Context, item MatchLog) error
	Update(ctx context.Context, item MatchLog) error
	Delete(ctx context.Context, id string) error
}
