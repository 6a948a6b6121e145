// Package cache wraps the read-heavy dashboard repositories with a TTL
// read-through layer. Writes pass through and invalidate.
package cache

import (
	"context"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/domain/performance"
	basecache "github.com/glovework/keeper-stats/internal/platform/cache"
)

type LeagueTableRepository struct {
	next  leaguetable.Repository
	cache *basecache.Store
}

func NewLeagueTableRepository(next leaguetable.Repository, cache *basecache.Store) *LeagueTableRepository {
	return &LeagueTableRepository{next: next, cache: cache}
}

func (r *LeagueTableRepository) List(ctx context.Context) ([]leaguetable.TeamData, error) {
	v, err := r.cache.GetOrLoad(ctx, "league-table:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]leaguetable.TeamData(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]leaguetable.TeamData)
	return append([]leaguetable.TeamData(nil), items...), nil
}

func (r *LeagueTableRepository) GetByTeam(ctx context.Context, team string) (leaguetable.TeamData, bool, error) {
	key := "league-table:team:" + team
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		row, exists, err := r.next.GetByTeam(ctx, team)
		if err != nil {
			return nil, err
		}
		return cachedTeamRow{value: row, exists: exists}, nil
	})
	if err != nil {
		return leaguetable.TeamData{}, false, err
	}

	cached, _ := v.(cachedTeamRow)
	return cached.value, cached.exists, nil
}

func (r *LeagueTableRepository) Insert(ctx context.Context, row leaguetable.TeamData) error {
	if err := r.next.Insert(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *LeagueTableRepository) Update(ctx context.Context, row leaguetable.TeamData) error {
	if err := r.next.Update(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *LeagueTableRepository) Delete(ctx context.Context, team string) error {
	if err := r.next.Delete(ctx, team); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *LeagueTableRepository) Replace(ctx context.Context, rows []leaguetable.TeamData) error {
	if err := r.next.Replace(ctx, rows); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *LeagueTableRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, "league-table:")
}

type cachedTeamRow struct {
	value  leaguetable.TeamData
	exists bool
}

type PerformanceRepository struct {
	next  performance.Repository
	cache *basecache.Store
}

func NewPerformanceRepository(next performance.Repository, cache *basecache.Store) *PerformanceRepository {
	return &PerformanceRepository{next: next, cache: cache}
}

func (r *PerformanceRepository) Get(ctx context.Context) (performance.Summary, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "performance:summary", func(ctx context.Context) (any, error) {
		summary, exists, err := r.next.Get(ctx)
		if err != nil {
			return nil, err
		}
		summary.Series = append([]performance.SeriesPoint(nil), summary.Series...)
		return cachedSummary{value: summary, exists: exists}, nil
	})
	if err != nil {
		return performance.Summary{}, false, err
	}

	cached, _ := v.(cachedSummary)
	out := cached.value
	out.Series = append([]performance.SeriesPoint(nil), out.Series...)
	return out, cached.exists, nil
}

func (r *PerformanceRepository) Replace(ctx context.Context, summary performance.Summary) error {
	if err := r.next.Replace(ctx, summary); err != nil {
		return err
	}
	r.cache.Delete(ctx, "performance:summary")
	return nil
}

type cachedSummary struct {
	value  performance.Summary
	exists bool
}
