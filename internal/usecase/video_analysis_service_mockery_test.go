package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	videoanalysismock "github.com/glovework/keeper-stats/internal/mocks/domain/videoanalysis"
	"github.com/stretchr/testify/mock"
)

func TestVideoAnalysisService_Delete_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := videoanalysismock.NewRepository(t)
	service := NewVideoAnalysisService(repo, nil)

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "1700000000-abc123.mp4").
		Return(videoanalysis.VideoAnalysis{ID: "1700000000-abc123.mp4"}, true, nil).
		Once()
	repo.
		On("Delete", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "1700000000-abc123.mp4").
		Return(nil).
		Once()

	if err := service.Delete(ctx, "1700000000-abc123.mp4"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestVideoAnalysisService_Delete_UnknownUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := videoanalysismock.NewRepository(t)
	service := NewVideoAnalysisService(repo, nil)

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "missing").
		Return(videoanalysis.VideoAnalysis{}, false, nil).
		Once()

	// The repository Delete must never fire; the mock's expectations
	// enforce it.
	if err := service.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
