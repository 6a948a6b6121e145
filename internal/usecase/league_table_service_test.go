package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/memory"
)

func TestLeagueTableService_AddTeam_ComputesPointsAndPosition(t *testing.T) {
	t.Parallel()

	recomputer := &stubRecomputer{}
	service := NewLeagueTableService(memory.NewLeagueTableRepository(memory.SeedLeagueTable()), recomputer)

	added, err := service.AddTeam(context.Background(), leaguetable.TeamData{
		Team:         "Norwood Town",
		Played:       3,
		Won:          2,
		Drawn:        0,
		Lost:         1,
		GoalsFor:     5,
		GoalsAgainst: 2,
		// Submitted points are ignored; the record decides.
		Points: 99,
	})
	if err != nil {
		t.Fatalf("AddTeam returned error: %v", err)
	}
	if added.Points != 6 {
		t.Fatalf("expected 6 points from 2 wins, got %d", added.Points)
	}
	// 6 points slots between Millbrook on 7 and the pair on 4.
	if added.Position != 2 {
		t.Fatalf("expected position 2, got %d", added.Position)
	}
	if recomputer.calls != 1 {
		t.Fatalf("expected 1 recompute after add, got %d", recomputer.calls)
	}

	rows, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("positions must be dense, row %d has position %d", i, row.Position)
		}
	}
}

func TestLeagueTableService_AddTeam_DuplicateRejected(t *testing.T) {
	t.Parallel()

	service := NewLeagueTableService(memory.NewLeagueTableRepository(memory.SeedLeagueTable()), &stubRecomputer{})

	_, err := service.AddTeam(context.Background(), leaguetable.TeamData{Team: "Millbrook City"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate team, got %v", err)
	}
}

func TestLeagueTableService_UpdateTeam_RecomputesPointsAndReranks(t *testing.T) {
	t.Parallel()

	recomputer := &stubRecomputer{}
	service := NewLeagueTableService(memory.NewLeagueTableRepository(memory.SeedLeagueTable()), recomputer)

	updated, err := service.UpdateTeam(context.Background(), "Harborview United", leaguetable.TeamData{
		Played:       4,
		Won:          3,
		Drawn:        1,
		Lost:         0,
		GoalsFor:     8,
		GoalsAgainst: 2,
	})
	if err != nil {
		t.Fatalf("UpdateTeam returned error: %v", err)
	}
	if updated.Points != 10 {
		t.Fatalf("expected 10 points, got %d", updated.Points)
	}
	if updated.Position != 1 {
		t.Fatalf("expected Harborview to top the table, got position %d", updated.Position)
	}
	if recomputer.calls != 1 {
		t.Fatalf("expected 1 recompute after update, got %d", recomputer.calls)
	}
}

func TestLeagueTableService_UpdateTeam_Unknown(t *testing.T) {
	t.Parallel()

	service := NewLeagueTableService(memory.NewLeagueTableRepository(memory.SeedLeagueTable()), &stubRecomputer{})

	_, err := service.UpdateTeam(context.Background(), "Phantom FC", leaguetable.TeamData{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueTableService_DeleteTeam_Reranks(t *testing.T) {
	t.Parallel()

	recomputer := &stubRecomputer{}
	service := NewLeagueTableService(memory.NewLeagueTableRepository(memory.SeedLeagueTable()), recomputer)

	if err := service.DeleteTeam(context.Background(), "Millbrook City"); err != nil {
		t.Fatalf("DeleteTeam returned error: %v", err)
	}
	if recomputer.calls != 1 {
		t.Fatalf("expected 1 recompute after delete, got %d", recomputer.calls)
	}

	rows, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Position != 1 {
		t.Fatalf("expected remaining leader at position 1, got %d", rows[0].Position)
	}
}

func TestLeagueTableService_DeleteTeam_Unknown(t *testing.T) {
	t.Parallel()

	recomputer := &stubRecomputer{}
	service := NewLeagueTableService(memory.NewLeagueTableRepository(nil), recomputer)

	if err := service.DeleteTeam(context.Background(), "Phantom FC"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if recomputer.calls != 0 {
		t.Fatalf("expected no recompute on failed delete, got %d", recomputer.calls)
	}
}

func TestLeagueTableService_AddTeam_RecomputeFailureSurfaces(t *testing.T) {
	t.Parallel()

	recomputer := &stubRecomputer{err: errors.New("summary store down")}
	service := NewLeagueTableService(memory.NewLeagueTableRepository(nil), recomputer)

	_, err := service.AddTeam(context.Background(), leaguetable.TeamData{Team: "Norwood Town"})
	if err == nil {
		t.Fatal("expected recompute failure to surface")
	}
}
