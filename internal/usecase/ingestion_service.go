package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/analysisjob"
	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	"github.com/glovework/keeper-stats/internal/platform/id"
	"github.com/glovework/keeper-stats/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

// BlobStore is the outbound object-storage surface the pipeline needs.
type BlobStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// VisionAnalyzer turns video bytes into free-text model output.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, videoID string, video []byte, mimeType string) (string, error)
}

type IngestionConfig struct {
	MaxWorkers  int
	MaxLifetime time.Duration
}

// IngestionService owns the upload-to-analysis pipeline. Submit stores
// the video and schedules the job; the pipeline runs on a bounded worker
// pool and every failure mode lands the job in an explicit failed state
// with a zeroed result, never a silent success.
type IngestionService struct {
	blobs       BlobStore
	vision      VisionAnalyzer
	jobRepo     analysisjob.Repository
	videoRepo   videoanalysis.Repository
	recomputer  Recomputer
	idGen       id.Generator
	logger      *logging.Logger
	pool        *ants.Pool
	maxLifetime time.Duration
	wg          sync.WaitGroup
	now         func() time.Time
}

func NewIngestionService(
	blobs BlobStore,
	vision VisionAnalyzer,
	jobRepo analysisjob.Repository,
	videoRepo videoanalysis.Repository,
	recomputer Recomputer,
	idGen id.Generator,
	cfg IngestionConfig,
	logger *logging.Logger,
) (*IngestionService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = 4
	}
	lifetime := cfg.MaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create analysis worker pool: %w", err)
	}

	return &IngestionService{
		blobs:       blobs,
		vision:      vision,
		jobRepo:     jobRepo,
		videoRepo:   videoRepo,
		recomputer:  recomputer,
		idGen:       idGen,
		logger:      logger,
		pool:        pool,
		maxLifetime: lifetime,
		now:         time.Now,
	}, nil
}

type Submission struct {
	Title       string
	Description string
	Filename    string
	ContentType string
	Body        io.Reader
}

type SubmitResult struct {
	VideoID   string
	PublicURL string
}

// Submit stores the uploaded video and schedules its analysis job. The
// returned video id is the poll handle; analysis continues after return.
func (s *IngestionService) Submit(ctx context.Context, sub Submission) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.Submit")
	defer span.End()

	if strings.TrimSpace(sub.Title) == "" {
		return SubmitResult{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if sub.Body == nil {
		return SubmitResult{}, fmt.Errorf("%w: video payload is required", ErrInvalidInput)
	}

	ext := strings.TrimPrefix(path.Ext(sub.Filename), ".")
	key, err := id.NewObjectKey(ext)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("generate object key: %w", err)
	}
	// The object key doubles as the poll handle, extension included, so a
	// client can relate the id straight back to the stored object.
	videoID := key

	publicURL, err := s.blobs.Upload(ctx, key, sub.ContentType, sub.Body)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("store uploaded video: %w", err)
	}

	job := analysisjob.Job{
		VideoID:     videoID,
		Title:       sub.Title,
		Description: sub.Description,
		ObjectKey:   key,
		MimeType:    sub.ContentType,
		VideoURL:    publicURL,
		Status:      analysisjob.StatusProcessing,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.jobRepo.Put(ctx, job); err != nil {
		return SubmitResult{}, fmt.Errorf("store analysis job: %w", err)
	}

	s.wg.Add(1)
	submitErr := s.pool.Submit(func() {
		defer s.wg.Done()
		s.runPipeline(job)
	})
	if submitErr != nil {
		s.wg.Done()
		s.failJob(context.Background(), job, analysisjob.FailurePanic, fmt.Errorf("schedule analysis job: %w", submitErr))
		return SubmitResult{}, fmt.Errorf("schedule analysis job: %w", submitErr)
	}

	s.logger.InfoContext(ctx, "analysis job submitted", "video_id", videoID, "key", key)
	return SubmitResult{VideoID: videoID, PublicURL: publicURL}, nil
}

// PollStatus returns the current job snapshot for a submitted video.
func (s *IngestionService) PollStatus(ctx context.Context, videoID string) (analysisjob.Job, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.PollStatus")
	defer span.End()

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return analysisjob.Job{}, fmt.Errorf("%w: video id is required", ErrInvalidInput)
	}

	job, exists, err := s.jobRepo.Get(ctx, videoID)
	if err != nil {
		return analysisjob.Job{}, fmt.Errorf("get analysis job: %w", err)
	}
	if !exists {
		return analysisjob.Job{}, fmt.Errorf("%w: video=%s", ErrNotFound, videoID)
	}
	return job, nil
}

// Shutdown waits for in-flight jobs, bounded by the passed context.
func (s *IngestionService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("wait for analysis jobs: %w", ctx.Err())
	}
	s.pool.Release()
	return nil
}

func (s *IngestionService) runPipeline(job analysisjob.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.maxLifetime)
	defer cancel()

	var catcher panics.Catcher
	catcher.Try(func() {
		s.execute(ctx, job)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		s.logger.Error("analysis pipeline panicked", "video_id", job.VideoID, "panic", recovered.String())
		s.failJob(context.Background(), job, analysisjob.FailurePanic, fmt.Errorf("pipeline panic: %s", recovered.String()))
	}
}

func (s *IngestionService) execute(ctx context.Context, job analysisjob.Job) {
	video, err := s.blobs.Download(ctx, job.ObjectKey)
	if err != nil {
		s.failJob(ctx, job, s.reasonFor(ctx, analysisjob.FailureDownload), err)
		return
	}

	rawText, err := s.vision.Analyze(ctx, job.VideoID, video, job.MimeType)
	if err != nil {
		s.failJob(ctx, job, s.reasonFor(ctx, analysisjob.FailureInference), err)
		return
	}

	result, err := videoanalysis.Extract(rawText)
	result.RawText = rawText
	result.VideoURL = job.VideoURL
	if err != nil {
		// Extraction failures still carry the zeroed result so pollers can
		// render the empty analysis alongside the failure reason.
		job.Result = result
		s.failJob(ctx, job, analysisjob.FailureNoJSON, err)
		return
	}

	saves, goals := videoanalysis.NotesFromEvents(result.Events)
	analysis := videoanalysis.VideoAnalysis{
		ID:          job.VideoID,
		Date:        job.SubmittedAt,
		Title:       job.Title,
		Description: job.Description,
		Saves:       result.Saves,
		Goals:       result.Goals,
		Result:      result,
		SaveNotes:   saves,
		GoalNotes:   goals,
	}
	if err := s.videoRepo.Insert(ctx, analysis); err != nil {
		job.Result = result
		s.failJob(ctx, job, s.reasonFor(ctx, analysisjob.FailurePersist), err)
		return
	}
	if err := s.recomputer.Recompute(ctx); err != nil {
		// The analysis row is already in; surface the stale aggregate rather
		// than failing the whole job.
		s.logger.Error("recompute after analysis failed", "video_id", job.VideoID, "error", err)
	}

	job.Status = analysisjob.StatusCompleted
	job.Result = result
	job.FinishedAt = s.now().UTC()
	if err := s.jobRepo.Put(context.Background(), job); err != nil {
		s.logger.Error("store completed analysis job failed", "video_id", job.VideoID, "error", err)
		return
	}
	s.logger.Info("analysis job completed", "video_id", job.VideoID, "saves", result.Saves, "goals", result.Goals)
}

// reasonFor prefers the timeout reason when the per-job deadline expired,
// whatever stage happened to observe it.
func (s *IngestionService) reasonFor(ctx context.Context, stage analysisjob.FailureReason) analysisjob.FailureReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return analysisjob.FailureTimeout
	}
	return stage
}

func (s *IngestionService) failJob(ctx context.Context, job analysisjob.Job, reason analysisjob.FailureReason, cause error) {
	job.Status = analysisjob.StatusFailed
	job.FailureReason = reason
	job.FinishedAt = s.now().UTC()
	if job.Result.Events == nil {
		job.Result.Events = []videoanalysis.Event{}
	}
	job.Result.VideoURL = job.VideoURL

	if err := s.jobRepo.Put(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Error("store failed analysis job failed", "video_id", job.VideoID, "error", err)
	}
	s.logger.Warn("analysis job failed", "video_id", job.VideoID, "reason", string(reason), "error", cause)
}
