package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/shotmap"
	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/memory"
)

func sampleAnalysis() videoanalysis.VideoAnalysis {
	events := []videoanalysis.Event{
		{Type: "save", Timestamp: "00:41", Description: "Diving stop in the top-left corner"},
		{Type: "save", Timestamp: "12:03", Description: "Claimed a cross under pressure"},
		{Type: "goal", Timestamp: "31:17", Description: "Header into the bottom-right corner"},
	}
	saves, goals := videoanalysis.NotesFromEvents(events)
	return videoanalysis.VideoAnalysis{
		ID:    "1758211200-a1b2c3",
		Date:  time.Date(2026, time.March, 7, 18, 30, 0, 0, time.UTC),
		Title: "vs Harborview United, first half",
		Saves: 2,
		Goals: 1,
		Result: videoanalysis.Result{
			Saves:    2,
			Goals:    1,
			Events:   events,
			VideoURL: "https://cdn.example.com/videos/1758211200-a1b2c3.mp4",
		},
		SaveNotes: saves,
		GoalNotes: goals,
	}
}

func TestVideoAnalysisService_GetByID(t *testing.T) {
	t.Parallel()

	repo := memory.NewVideoAnalysisRepository([]videoanalysis.VideoAnalysis{sampleAnalysis()})
	service := NewVideoAnalysisService(repo, nil)

	got, err := service.GetByID(context.Background(), "1758211200-a1b2c3")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Saves != 2 || got.Goals != 1 {
		t.Fatalf("unexpected counts: saves=%d goals=%d", got.Saves, got.Goals)
	}
	if len(got.SaveNotes) != 2 || len(got.GoalNotes) != 1 {
		t.Fatalf("unexpected note split: saves=%d goals=%d", len(got.SaveNotes), len(got.GoalNotes))
	}

	if _, err := service.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestVideoAnalysisService_ShotMap(t *testing.T) {
	t.Parallel()

	repo := memory.NewVideoAnalysisRepository([]videoanalysis.VideoAnalysis{sampleAnalysis()})
	projector := shotmap.NewProjector(rand.New(rand.NewSource(7)))
	service := NewVideoAnalysisService(repo, projector)

	projection, err := service.ShotMap(context.Background(), "1758211200-a1b2c3")
	if err != nil {
		t.Fatalf("ShotMap returned error: %v", err)
	}
	if projection.Saves != 2 || projection.Goals != 1 {
		t.Fatalf("unexpected projection counts: %+v", projection)
	}
	if len(projection.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(projection.Markers))
	}
	if projection.Markers[0].Zone != "top-left" {
		t.Fatalf("expected first marker in top-left, got %q", projection.Markers[0].Zone)
	}
	if projection.Markers[2].Zone != "bottom-right" {
		t.Fatalf("expected goal marker in bottom-right, got %q", projection.Markers[2].Zone)
	}

	if _, err := service.ShotMap(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoAnalysisService_Delete(t *testing.T) {
	t.Parallel()

	repo := memory.NewVideoAnalysisRepository([]videoanalysis.VideoAnalysis{sampleAnalysis()})
	service := NewVideoAnalysisService(repo, nil)

	if err := service.Delete(context.Background(), "1758211200-a1b2c3"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	items, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(items))
	}

	if err := service.Delete(context.Background(), "1758211200-a1b2c3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
