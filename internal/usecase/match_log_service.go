package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/platform/id"
)

// Recomputer is the slice of PerformanceService that record mutations
// need: every points-affecting write triggers one full pass.
type Recomputer interface {
	Recompute(ctx context.Context) error
}

// recomputeAdapter narrows PerformanceService to the Recomputer shape.
type recomputeAdapter struct {
	service *PerformanceService
}

func RecomputerFor(service *PerformanceService) Recomputer {
	return recomputeAdapter{service: service}
}

func (a recomputeAdapter) Recompute(ctx context.Context) error {
	_, err := a.service.Recompute(ctx)
	return err
}

type MatchLogService struct {
	repo       matchlog.Repository
	idGen      id.Generator
	recomputer Recomputer
}

func NewMatchLogService(repo matchlog.Repository, idGen id.Generator, recomputer Recomputer) *MatchLogService {
	return &MatchLogService{
		repo:       repo,
		idGen:      idGen,
		recomputer: recomputer,
	}
}

func (s *MatchLogService) List(ctx context.Context) ([]matchlog.MatchLog, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchLogService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match logs: %w", err)
	}
	return items, nil
}

func (s *MatchLogService) GetByID(ctx context.Context, matchID string) (matchlog.MatchLog, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchLogService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return matchlog.MatchLog{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("get match log: %w", err)
	}
	if !exists {
		return matchlog.MatchLog{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchLogService) Create(ctx context.Context, item matchlog.MatchLog) (matchlog.MatchLog, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchLogService.Create")
	defer span.End()

	if err := item.Validate(); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("generate match id: %w", err)
	}
	item.ID = newID

	if err := s.repo.Insert(ctx, item); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("insert match log: %w", err)
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("recompute after match log create: %w", err)
	}
	return item, nil
}

func (s *MatchLogService) Patch(ctx context.Context, matchID string, update matchlog.Update) (matchlog.MatchLog, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchLogService.Patch")
	defer span.End()

	current, err := s.GetByID(ctx, matchID)
	if err != nil {
		return matchlog.MatchLog{}, err
	}

	next := update.Apply(current)
	if err := next.Validate(); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, next); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("update match log: %w", err)
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		return matchlog.MatchLog{}, fmt.Errorf("recompute after match log update: %w", err)
	}
	return next, nil
}

func (s *MatchLogService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "MatchLogService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, matchID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match log: %w", err)
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after match log delete: %w", err)
	}
	return nil
}
