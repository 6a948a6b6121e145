package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/glovework/keeper-stats/internal/domain/settings"
)

type SettingsService struct {
	repo       settings.Repository
	recomputer Recomputer
}

func NewSettingsService(repo settings.Repository, recomputer Recomputer) *SettingsService {
	return &SettingsService{
		repo:       repo,
		recomputer: recomputer,
	}
}

func (s *SettingsService) Get(ctx context.Context) (settings.UserSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "SettingsService.Get")
	defer span.End()

	cfg, _, err := s.repo.Get(ctx)
	if err != nil {
		return settings.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return cfg, nil
}

// Save stores the settings and, when the club changed, triggers a full
// recompute so every derived stat follows the new perspective.
func (s *SettingsService) Save(ctx context.Context, cfg settings.UserSettings) (settings.UserSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "SettingsService.Save")
	defer span.End()

	cfg.ClubTeam = strings.TrimSpace(cfg.ClubTeam)
	if err := cfg.Validate(); err != nil {
		return settings.UserSettings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, _, err := s.repo.Get(ctx)
	if err != nil {
		return settings.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return settings.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}

	if !strings.EqualFold(current.ClubTeam, cfg.ClubTeam) {
		if err := s.recomputer.Recompute(ctx); err != nil {
			return settings.UserSettings{}, fmt.Errorf("recompute after club change: %w", err)
		}
	}
	return cfg, nil
}
