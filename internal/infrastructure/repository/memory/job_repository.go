package memory

import (
	"context"
	"sync"

	"github.com/glovework/keeper-stats/internal/domain/analysisjob"
)

// JobRepository is the only job store; jobs are ephemeral and do not
// survive a restart.
type JobRepository struct {
	mu    sync.RWMutex
	items map[string]analysisjob.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{
		items: make(map[string]analysisjob.Job, 16),
	}
}

func (r *JobRepository) Get(_ context.Context, videoID string) (analysisjob.Job, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.items[videoID]
	if !ok {
		return analysisjob.Job{}, false, nil
	}
	return job, true, nil
}

func (r *JobRepository) Put(_ context.Context, job analysisjob.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[job.VideoID] = job
	return nil
}
