package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/matchlog"
)

type MatchLogRepository struct {
	mu     sync.RWMutex
	items  map[string]matchlog.MatchLog
	orders []string
}

func NewMatchLogRepository(logs []matchlog.MatchLog) *MatchLogRepository {
	items := make(map[string]matchlog.MatchLog, len(logs))
	orders := make([]string, 0, len(logs))

	for _, m := range logs {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MatchLogRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MatchLogRepository) List(_ context.Context) ([]matchlog.MatchLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchlog.MatchLog, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MatchLogRepository) GetByID(_ context.Context, id string) (matchlog.MatchLog, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return matchlog.MatchLog{}, false, nil
	}
	return m, true, nil
}

func (r *MatchLogRepository) Insert(_ context.Context, item matchlog.MatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("insert match log: duplicate id %s", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *MatchLogRepository) Update(_ context.Context, item matchlog.MatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("update match log: not found")
	}
	r.items[item.ID] = item
	return nil
}

func (r *MatchLogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return fmt.Errorf("delete match log: not found")
	}
	delete(r.items, id)
	for i, current := range r.orders {
		if current == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
