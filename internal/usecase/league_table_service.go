package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
)

type LeagueTableService struct {
	repo       leaguetable.Repository
	recomputer Recomputer
}

func NewLeagueTableService(repo leaguetable.Repository, recomputer Recomputer) *LeagueTableService {
	return &LeagueTableService{
		repo:       repo,
		recomputer: recomputer,
	}
}

func (s *LeagueTableService) List(ctx context.Context) ([]leaguetable.TeamData, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueTableService.List")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league table: %w", err)
	}
	return rows, nil
}

func (s *LeagueTableService) AddTeam(ctx context.Context, row leaguetable.TeamData) (leaguetable.TeamData, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueTableService.AddTeam")
	defer span.End()

	row.Team = strings.TrimSpace(row.Team)
	if err := row.Validate(); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.repo.GetByTeam(ctx, row.Team)
	if err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("get league table row: %w", err)
	}
	if exists {
		return leaguetable.TeamData{}, fmt.Errorf("%w: team %s already exists", ErrInvalidInput, row.Team)
	}

	row.Points = leaguetable.PointsFor(row.Won, row.Drawn)
	if err := s.repo.Insert(ctx, row); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("insert league table row: %w", err)
	}
	if err := s.rerank(ctx); err != nil {
		return leaguetable.TeamData{}, err
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("recompute after league table add: %w", err)
	}

	out, _, err := s.repo.GetByTeam(ctx, row.Team)
	if err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("get league table row after rank: %w", err)
	}
	return out, nil
}

func (s *LeagueTableService) UpdateTeam(ctx context.Context, team string, row leaguetable.TeamData) (leaguetable.TeamData, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueTableService.UpdateTeam")
	defer span.End()

	team = strings.TrimSpace(team)
	if team == "" {
		return leaguetable.TeamData{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	_, exists, err := s.repo.GetByTeam(ctx, team)
	if err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("get league table row: %w", err)
	}
	if !exists {
		return leaguetable.TeamData{}, fmt.Errorf("%w: team=%s", ErrNotFound, team)
	}

	row.Team = team
	if err := row.Validate(); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	row.Points = leaguetable.PointsFor(row.Won, row.Drawn)

	if err := s.repo.Update(ctx, row); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("update league table row: %w", err)
	}
	if err := s.rerank(ctx); err != nil {
		return leaguetable.TeamData{}, err
	}
	// A manual edit of the club's own row would otherwise drift from the
	// match-log-derived record; the recompute pass wins that conflict.
	if err := s.recomputer.Recompute(ctx); err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("recompute after league table update: %w", err)
	}

	out, _, err := s.repo.GetByTeam(ctx, team)
	if err != nil {
		return leaguetable.TeamData{}, fmt.Errorf("get league table row after rank: %w", err)
	}
	return out, nil
}

func (s *LeagueTableService) DeleteTeam(ctx context.Context, team string) error {
	ctx, span := startUsecaseSpan(ctx, "LeagueTableService.DeleteTeam")
	defer span.End()

	team = strings.TrimSpace(team)
	if team == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	_, exists, err := s.repo.GetByTeam(ctx, team)
	if err != nil {
		return fmt.Errorf("get league table row: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, team)
	}

	if err := s.repo.Delete(ctx, team); err != nil {
		return fmt.Errorf("delete league table row: %w", err)
	}
	if err := s.rerank(ctx); err != nil {
		return err
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after league table delete: %w", err)
	}
	return nil
}

func (s *LeagueTableService) rerank(ctx context.Context) error {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list league table for rank: %w", err)
	}
	if err := s.repo.Replace(ctx, leaguetable.Rank(rows)); err != nil {
		return fmt.Errorf("replace ranked league table: %w", err)
	}
	return nil
}
