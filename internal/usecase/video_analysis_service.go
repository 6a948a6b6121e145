package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/glovework/keeper-stats/internal/domain/shotmap"
	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
)

type VideoAnalysisService struct {
	repo      videoanalysis.Repository
	projector *shotmap.Projector
}

func NewVideoAnalysisService(repo videoanalysis.Repository, projector *shotmap.Projector) *VideoAnalysisService {
	if projector == nil {
		projector = shotmap.NewProjector(nil)
	}
	return &VideoAnalysisService{
		repo:      repo,
		projector: projector,
	}
}

func (s *VideoAnalysisService) List(ctx context.Context) ([]videoanalysis.VideoAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "VideoAnalysisService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list video analyses: %w", err)
	}
	return items, nil
}

func (s *VideoAnalysisService) GetByID(ctx context.Context, analysisID string) (videoanalysis.VideoAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "VideoAnalysisService.GetByID")
	defer span.End()

	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return videoanalysis.VideoAnalysis{}, fmt.Errorf("%w: analysis id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, analysisID)
	if err != nil {
		return videoanalysis.VideoAnalysis{}, fmt.Errorf("get video analysis: %w", err)
	}
	if !exists {
		return videoanalysis.VideoAnalysis{}, fmt.Errorf("%w: analysis=%s", ErrNotFound, analysisID)
	}
	return item, nil
}

func (s *VideoAnalysisService) Delete(ctx context.Context, analysisID string) error {
	ctx, span := startUsecaseSpan(ctx, "VideoAnalysisService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, analysisID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, analysisID); err != nil {
		return fmt.Errorf("delete video analysis: %w", err)
	}
	return nil
}

// ShotMap projects the stored events for one analysis onto the goal-mouth
// plane. Coordinates are freshly jittered on every call.
func (s *VideoAnalysisService) ShotMap(ctx context.Context, analysisID string) (shotmap.Projection, error) {
	ctx, span := startUsecaseSpan(ctx, "VideoAnalysisService.ShotMap")
	defer span.End()

	item, err := s.GetByID(ctx, analysisID)
	if err != nil {
		return shotmap.Projection{}, err
	}
	return s.projector.Project(item.Result.Events), nil
}
