package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
)

type LeagueTableRepository struct {
	mu     sync.RWMutex
	items  map[string]leaguetable.TeamData
	orders []string
}

func NewLeagueTableRepository(rows []leaguetable.TeamData) *LeagueTableRepository {
	items := make(map[string]leaguetable.TeamData, len(rows))
	orders := make([]string, 0, len(rows))

	for _, row := range rows {
		items[row.Team] = row
		orders = append(orders, row.Team)
	}

	return &LeagueTableRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueTableRepository) List(_ context.Context) ([]leaguetable.TeamData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguetable.TeamData, 0, len(r.orders))
	for _, team := range r.orders {
		out = append(out, r.items[team])
	}
	return out, nil
}

func (r *LeagueTableRepository) GetByTeam(_ context.Context, team string) (leaguetable.TeamData, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.items[team]
	if !ok {
		return leaguetable.TeamData{}, false, nil
	}
	return row, true, nil
}

func (r *LeagueTableRepository) Insert(_ context.Context, row leaguetable.TeamData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[row.Team]; exists {
		return fmt.Errorf("insert league table row: duplicate team %s", row.Team)
	}
	r.items[row.Team] = row
	r.orders = append(r.orders, row.Team)
	return nil
}

func (r *LeagueTableRepository) Update(_ context.Context, row leaguetable.TeamData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[row.Team]; !exists {
		return fmt.Errorf("update league table row: not found")
	}
	r.items[row.Team] = row
	return nil
}

func (r *LeagueTableRepository) Delete(_ context.Context, team string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[team]; !exists {
		return fmt.Errorf("delete league table row: not found")
	}
	delete(r.items, team)
	for i, current := range r.orders {
		if current == team {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

func (r *LeagueTableRepository) Replace(_ context.Context, rows []leaguetable.TeamData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]leaguetable.TeamData, len(rows))
	r.orders = make([]string, 0, len(rows))
	for _, row := range rows {
		r.items[row.Team] = row
		r.orders = append(r.orders, row.Team)
	}
	return nil
}
