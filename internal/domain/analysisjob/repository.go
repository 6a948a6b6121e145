package analysisjob

import "context"

// Repository stores job state. Jobs are ephemeral by design: they exist to
// be polled between upload and completion and do not survive a restart.
type Repository interface {
	Get(ctx context.Context, videoID string) (Job, bool, error)
	Put(ctx context.Context, job Job) error
}
