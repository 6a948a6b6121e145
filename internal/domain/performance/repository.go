package performance

import "context"

// Repository stores the single derived summary row.
type Repository interface {
	Get(ctx context.Context) (Summary, bool, error)
	Replace(ctx context.Context, summary Summary) error
}
