package settings

import "context"

// Repository stores the single settings row.
type Repository interface {
	Get(ctx context.Context) (UserSettings, bool, error)
	Save(ctx context.Context, s UserSettings) error
}
