package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/analysisjob"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/memory"
	"github.com/glovework/keeper-stats/internal/platform/id"
	"github.com/glovework/keeper-stats/internal/platform/logging"
)

const sampleModelOutput = "Here is what I found in the footage.\n" +
	"```json\n" +
	`{
	  "saves": 9,
	  "goals": 9,
	  "events": [
	    {"type": "save", "timestamp": "00:41", "description": "Diving stop, top-left corner"},
	    {"type": "goal", "timestamp": "12:03", "description": "Low drive into the bottom-right corner"},
	    {"type": "save", "timestamp": "31:17", "description": "Caught the header at the center"}
	  ]
	}` + "\n```\n"

// stubBlobStore keeps uploads in memory keyed by object key.
type stubBlobStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	uploadErr   error
	downloadErr error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{objects: make(map[string][]byte)}
}

func (s *stubBlobStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return "https://cdn.test/videos/" + key, nil
}

func (s *stubBlobStore) Download(_ context.Context, key string) ([]byte, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not stored", key)
	}
	return data, nil
}

// stubVision answers with a canned transcript or a canned error.
type stubVision struct {
	output string
	err    error
	// waitForDeadline makes the stub block until the pipeline context
	// expires, simulating a stalled inference call.
	waitForDeadline bool
}

func (s *stubVision) Analyze(ctx context.Context, _ string, _ []byte, _ string) (string, error) {
	if s.waitForDeadline {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

type ingestionFixture struct {
	service    *IngestionService
	blobs      *stubBlobStore
	videoRepo  *memory.VideoAnalysisRepository
	jobRepo    *memory.JobRepository
	recomputer *stubRecomputer
}

func newIngestionFixture(t *testing.T, vision VisionAnalyzer, blobs *stubBlobStore, cfg IngestionConfig) ingestionFixture {
	t.Helper()

	videoRepo := memory.NewVideoAnalysisRepository(nil)
	jobRepo := memory.NewJobRepository()
	recomputer := &stubRecomputer{}

	service, err := NewIngestionService(
		blobs,
		vision,
		jobRepo,
		videoRepo,
		recomputer,
		id.NewRandomGenerator(),
		cfg,
		logging.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewIngestionService returned error: %v", err)
	}
	return ingestionFixture{
		service:    service,
		blobs:      blobs,
		videoRepo:  videoRepo,
		jobRepo:    jobRepo,
		recomputer: recomputer,
	}
}

// submitAndWait runs one submission through the full pipeline.
func submitAndWait(t *testing.T, fx ingestionFixture, sub Submission) SubmitResult {
	t.Helper()

	out, err := fx.service.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fx.service.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
	return out
}

func sampleSubmission() Submission {
	return Submission{
		Title:       "vs Harborview United, first half",
		Description: "Uploaded from the touchline camera.",
		Filename:    "first-half.mp4",
		ContentType: "video/mp4",
		Body:        bytes.NewReader([]byte("not really an mp4")),
	}
}

func TestIngestionService_Submit_CompletesAndPersists(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{output: sampleModelOutput}, newStubBlobStore(), IngestionConfig{})

	out := submitAndWait(t, fx, sampleSubmission())
	if out.VideoID == "" {
		t.Fatal("expected a video id")
	}
	if !strings.Contains(out.PublicURL, out.VideoID) {
		t.Fatalf("public URL %q should contain the video id %q", out.PublicURL, out.VideoID)
	}
	if !strings.HasSuffix(out.VideoID, ".mp4") {
		t.Fatalf("video id %q should keep the upload extension", out.VideoID)
	}

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.ObjectKey != out.VideoID {
		t.Fatalf("video id %q should match the stored object key %q", out.VideoID, job.ObjectKey)
	}
	if job.Status != analysisjob.StatusCompleted {
		t.Fatalf("expected completed job, got %s (reason %s)", job.Status, job.FailureReason)
	}
	if !job.Terminal() {
		t.Fatal("completed job must be terminal")
	}
	// Event-derived counts win over the model's claimed 9/9.
	if job.Result.Saves != 2 || job.Result.Goals != 1 {
		t.Fatalf("expected counts from events, got saves=%d goals=%d", job.Result.Saves, job.Result.Goals)
	}
	if len(job.Result.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(job.Result.Events))
	}
	if job.Result.Summary == "" {
		t.Fatal("expected a summary even when the model omits one")
	}
	if job.FinishedAt.IsZero() {
		t.Fatal("expected a finish timestamp")
	}

	analysis, exists, err := fx.videoRepo.GetByID(context.Background(), out.VideoID)
	if err != nil || !exists {
		t.Fatalf("expected persisted analysis, exists=%v err=%v", exists, err)
	}
	if analysis.Title != "vs Harborview United, first half" {
		t.Fatalf("unexpected analysis title: %q", analysis.Title)
	}
	if len(analysis.SaveNotes) != 2 || len(analysis.GoalNotes) != 1 {
		t.Fatalf("unexpected note split: saves=%d goals=%d", len(analysis.SaveNotes), len(analysis.GoalNotes))
	}
	if fx.recomputer.calls != 1 {
		t.Fatalf("expected 1 recompute after persist, got %d", fx.recomputer.calls)
	}
}

func TestIngestionService_Submit_NoJSONFailsWithZeroedResult(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{output: "The keeper had a quiet afternoon."}, newStubBlobStore(), IngestionConfig{})

	out := submitAndWait(t, fx, sampleSubmission())

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusFailed {
		t.Fatalf("expected failed job, got %s", job.Status)
	}
	if job.FailureReason != analysisjob.FailureNoJSON {
		t.Fatalf("expected no_json failure, got %s", job.FailureReason)
	}
	// Failed jobs still answer with the completed shape.
	if job.Result.Events == nil {
		t.Fatal("failed job must carry a non-nil event list")
	}
	if job.Result.Saves != 0 || job.Result.Goals != 0 {
		t.Fatalf("expected zeroed counts, got saves=%d goals=%d", job.Result.Saves, job.Result.Goals)
	}
	if job.Result.VideoURL == "" {
		t.Fatal("failed job must keep the video URL for pollers")
	}

	if _, exists, _ := fx.videoRepo.GetByID(context.Background(), out.VideoID); exists {
		t.Fatal("failed analysis must not be persisted")
	}
	if fx.recomputer.calls != 0 {
		t.Fatalf("failed jobs must not recompute, got %d calls", fx.recomputer.calls)
	}
}

func TestIngestionService_Submit_DownloadFailure(t *testing.T) {
	t.Parallel()

	blobs := newStubBlobStore()
	blobs.downloadErr = errors.New("object store unreachable")
	fx := newIngestionFixture(t, &stubVision{output: sampleModelOutput}, blobs, IngestionConfig{})

	out := submitAndWait(t, fx, sampleSubmission())

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusFailed || job.FailureReason != analysisjob.FailureDownload {
		t.Fatalf("expected failed/download, got %s/%s", job.Status, job.FailureReason)
	}
}

func TestIngestionService_Submit_InferenceFailure(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{err: errors.New("model endpoint 500")}, newStubBlobStore(), IngestionConfig{})

	out := submitAndWait(t, fx, sampleSubmission())

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusFailed || job.FailureReason != analysisjob.FailureInference {
		t.Fatalf("expected failed/inference, got %s/%s", job.Status, job.FailureReason)
	}
}

func TestIngestionService_Submit_LifetimeExpiryReportsTimeout(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{waitForDeadline: true}, newStubBlobStore(), IngestionConfig{
		MaxLifetime: 50 * time.Millisecond,
	})

	out := submitAndWait(t, fx, sampleSubmission())

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusFailed || job.FailureReason != analysisjob.FailureTimeout {
		t.Fatalf("expected failed/timeout, got %s/%s", job.Status, job.FailureReason)
	}
}

func TestIngestionService_Submit_ValidatesInput(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{output: sampleModelOutput}, newStubBlobStore(), IngestionConfig{})

	if _, err := fx.service.Submit(context.Background(), Submission{Body: bytes.NewReader(nil)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}
	if _, err := fx.service.Submit(context.Background(), Submission{Title: "clip"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing body, got %v", err)
	}
}

func TestIngestionService_PollStatus_Unknown(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(t, &stubVision{output: sampleModelOutput}, newStubBlobStore(), IngestionConfig{})

	if _, err := fx.service.PollStatus(context.Background(), "never-submitted"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fx.service.PollStatus(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestIngestionService_PollStatus_ProcessingBeforeCompletion(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	vision := &blockingVision{release: release, output: sampleModelOutput}
	fx := newIngestionFixture(t, vision, newStubBlobStore(), IngestionConfig{})

	out, err := fx.service.Submit(context.Background(), sampleSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	job, err := fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusProcessing {
		t.Fatalf("expected processing while inference runs, got %s", job.Status)
	}
	if job.Terminal() {
		t.Fatal("processing job must not be terminal")
	}

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fx.service.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	job, err = fx.service.PollStatus(context.Background(), out.VideoID)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	if job.Status != analysisjob.StatusCompleted {
		t.Fatalf("expected completed job after release, got %s", job.Status)
	}
}

// blockingVision parks until released, keeping the job observable in its
// processing state.
type blockingVision struct {
	release <-chan struct{}
	output  string
}

func (b *blockingVision) Analyze(ctx context.Context, _ string, _ []byte, _ string) (string, error) {
	select {
	case <-b.release:
		return b.output, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
