package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	matchlogmock "github.com/glovework/keeper-stats/internal/mocks/domain/matchlog"
	"github.com/stretchr/testify/mock"
)

func TestMatchLogService_GetByID_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := matchlogmock.NewRepository(t)
	service := NewMatchLogService(repo, &stubIDGenerator{next: "unused"}, &stubRecomputer{})

	stored := matchlog.MatchLog{
		ID:        "match-001",
		Date:      time.Date(2026, time.April, 18, 15, 0, 0, 0, time.UTC),
		HomeTeam:  "Riverton Rovers",
		AwayTeam:  "Millbrook City",
		HomeScore: 2,
		AwayScore: 1,
		Saves:     5,
	}

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "match-001").
		Return(stored, true, nil).
		Once()

	got, err := service.GetByID(ctx, "match-001")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.ID != stored.ID || got.Saves != stored.Saves {
		t.Fatalf("unexpected match log: %+v", got)
	}
}

func TestMatchLogService_Delete_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := matchlogmock.NewRepository(t)
	recomputer := &stubRecomputer{}
	service := NewMatchLogService(repo, &stubIDGenerator{next: "unused"}, recomputer)

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "match-missing").
		Return(matchlog.MatchLog{}, false, nil).
		Once()

	// Delete and Recompute must never fire for an unknown id; the mock's
	// expectations enforce the former.
	if err := service.Delete(ctx, "match-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if recomputer.calls != 0 {
		t.Fatalf("expected no recompute, got %d", recomputer.calls)
	}
}
