package videoanalysis

import "context"

// Repository describes video-analysis persistence needs from use cases.
// Analyses are created whole once a job completes and are never partially
// updated afterwards.
type Repository interface {
	List(ctx context.Context) ([]VideoAnalysis, error)
	GetByID(ctx context.Context, id string) (VideoAnalysis, bool, error)
	Insert(ctx context.Context, item VideoAnalysis) error
	Delete(ctx context.Context, id string) error
}
