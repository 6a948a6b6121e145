package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	leaguetablemock "github.com/glovework/keeper-stats/internal/mocks/domain/leaguetable"
	"github.com/stretchr/testify/mock"
)

func TestLeagueTableService_List_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguetablemock.NewRepository(t)
	service := NewLeagueTableService(repo, &stubRecomputer{})

	table := []leaguetable.TeamData{
		{Position: 1, Team: "Millbrook City", Played: 3, Won: 2, Drawn: 1, Points: 7},
		{Position: 2, Team: "Riverton Rovers", Played: 3, Won: 1, Drawn: 1, Points: 4},
	}

	repo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(table, nil).
		Once()

	got, err := service.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 || got[0].Team != "Millbrook City" {
		t.Fatalf("unexpected table: %+v", got)
	}
}

func TestLeagueTableService_List_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguetablemock.NewRepository(t)
	service := NewLeagueTableService(repo, &stubRecomputer{})

	repo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(nil, errors.New("table store down")).
		Once()

	if _, err := service.List(ctx); err == nil {
		t.Fatal("expected repository error to surface")
	}
}
