package analysisjob

import (
	"time"

	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// FailureReason names the pipeline stage that sank a job. Failed jobs still
// carry a zeroed result so pollers written against the completed shape keep
// working.
type FailureReason string

const (
	FailureDownload  FailureReason = "download"
	FailureInference FailureReason = "inference"
	FailureNoJSON    FailureReason = "no_json"
	FailurePersist   FailureReason = "persist"
	FailureTimeout   FailureReason = "timeout"
	FailurePanic     FailureReason = "panic"
)

// Job is one asynchronous video-analysis task, keyed by the video id issued
// at upload time. processing is the only non-terminal state.
type Job struct {
	VideoID       string
	Title         string
	Description   string
	ObjectKey     string
	MimeType      string
	VideoURL      string
	Status        Status
	FailureReason FailureReason
	Result        videoanalysis.Result
	SubmittedAt   time.Time
	FinishedAt    time.Time
}

func (j Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
