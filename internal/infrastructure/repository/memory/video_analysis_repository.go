package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
)

type VideoAnalysisRepository struct {
	mu     sync.RWMutex
	items  map[string]videoanalysis.VideoAnalysis
	orders []string
}

func NewVideoAnalysisRepository(analyses []videoanalysis.VideoAnalysis) *VideoAnalysisRepository {
	items := make(map[string]videoanalysis.VideoAnalysis, len(analyses))
	orders := make([]string, 0, len(analyses))

	for _, v := range analyses {
		items[v.ID] = v
		orders = append(orders, v.ID)
	}

	return &VideoAnalysisRepository{
		items:  items,
		orders: orders,
	}
}

func (r *VideoAnalysisRepository) List(_ context.Context) ([]videoanalysis.VideoAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]videoanalysis.VideoAnalysis, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *VideoAnalysisRepository) GetByID(_ context.Context, id string) (videoanalysis.VideoAnalysis, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		return videoanalysis.VideoAnalysis{}, false, nil
	}
	return v, true, nil
}

func (r *VideoAnalysisRepository) Insert(_ context.Context, item videoanalysis.VideoAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("insert video analysis: duplicate id %s", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *VideoAnalysisRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return fmt.Errorf("delete video analysis: not found")
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
