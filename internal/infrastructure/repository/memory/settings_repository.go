package memory

import (
	"context"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/settings"
)

type SettingsRepository struct {
	mu    sync.RWMutex
	value settings.UserSettings
	set   bool
}

func NewSettingsRepository(initial *settings.UserSettings) *SettingsRepository {
	r := &SettingsRepository{}
	if initial != nil {
		r.value = *initial
		r.set = true
	}
	return r
}

func (r *SettingsRepository) Get(_ context.Context) (settings.UserSettings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.value, r.set, nil
}

func (r *SettingsRepository) Save(_ context.Context, s settings.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = s
	r.set = true
	return nil
}
