package memory

import (
	"context"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/performance"
)

type PerformanceRepository struct {
	mu    sync.RWMutex
	value performance.Summary
	set   bool
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{}
}

func (r *PerformanceRepository) Get(_ context.Context) (performance.Summary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.value, r.set, nil
}

func (r *PerformanceRepository) Replace(_ context.Context, summary performance.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = summary
	r.set = true
	return nil
}
