package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/thumbd/internal/adapter/storage/sqlite"
	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/port"
	"github.com/bnema/thumbd/internal/port/mocks"
)

var small = domain.Size{Name: "SMALL", Width: 150, Height: 150}

type generatorDeps struct {
	sources     *mocks.ObjectStorageMock
	derivatives *mocks.ObjectStorageMock
	renderer    *mocks.RendererMock
	events      *mocks.EventPublisherMock
}

func newTestGenerator(t *testing.T, jobs port.JobStore, pool *WorkerPool) (*Generator, generatorDeps) {
	t.Helper()
	deps := generatorDeps{
		sources:     mocks.NewObjectStorageMock(t),
		derivatives: mocks.NewObjectStorageMock(t),
		renderer:    mocks.NewRendererMock(t),
		events:      mocks.NewEventPublisherMock(t),
	}
	g := NewGenerator(jobs, deps.sources, deps.derivatives, deps.renderer, deps.events, pool, GeneratorConfig{
		Sizes:       domain.DefaultSizes(),
		MaxAttempts: 3,
		StaleAfter:  5 * time.Minute,
	}, zerolog.Nop())
	return g, deps
}

func newSQLiteJobs(t *testing.T) *sqlite.JobStore {
	t.Helper()
	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return sqlite.NewJobStore(store)
}

func claimedJob() *domain.Job {
	return &domain.Job{
		ID:           "job-1",
		SourceID:     "src-1",
		OwnerID:      "owner-1",
		Size:         "SMALL",
		Status:       domain.JobStatusProcessing,
		ContentType:  "image/jpeg",
		SourcePath:   "files/src-1.jpg",
		AttemptCount: 1,
	}
}

func TestGenerator_Process_Success(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	g, deps := newTestGenerator(t, jobs, nil)
	ctx := context.Background()
	job := claimedJob()
	wantPath := "thumbnails/owner-1/src-1/small_job-1_1.webp"

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.AnythingOfType("time.Time")).Return(job, nil).Once()
	deps.renderer.EXPECT().Supports("image/jpeg").Return(true).Once()
	deps.sources.EXPECT().Get(mock.Anything, "files/src-1.jpg").Return([]byte("jpeg"), nil).Once()
	deps.renderer.EXPECT().RecommendedFormat("image/jpeg").Return(domain.FormatWebP).Once()
	deps.renderer.EXPECT().Render(mock.Anything, []byte("jpeg"), "image/jpeg", small, domain.FormatWebP).
		Return(&domain.Rendition{Data: []byte("webp"), Format: domain.FormatWebP, Width: 150, Height: 113}, nil).
		Once()
	deps.derivatives.EXPECT().Put(mock.Anything, wantPath, []byte("webp"), "image/webp").Return(nil).Once()
	jobs.EXPECT().Complete(mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusReady && j.StoragePath == wantPath && j.ByteSize == 4
	})).Return(nil).Once()
	deps.events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventDerivativeReady && e.Size == "SMALL" && e.Width == 150 && e.Height == 113 &&
			e.StoragePath == wantPath && e.OwnerID == "owner-1"
	})).Return(nil).Once()

	g.Process(ctx, "job-1")
}

func TestGenerator_Process_ClaimLost(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	g, _ := newTestGenerator(t, jobs, nil)

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.AnythingOfType("time.Time")).
		Return(nil, domain.ErrClaimLost).
		Once()

	// No render, upload or event may happen.
	g.Process(context.Background(), "job-1")
}

func TestGenerator_Process_CompleteFencedRemovesOwnObject(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	g, deps := newTestGenerator(t, jobs, nil)
	job := claimedJob()
	wantPath := "thumbnails/owner-1/src-1/small_job-1_1.webp"

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.Anything).Return(job, nil).Once()
	deps.renderer.EXPECT().Supports("image/jpeg").Return(true).Once()
	deps.sources.EXPECT().Get(mock.Anything, "files/src-1.jpg").Return([]byte("jpeg"), nil).Once()
	deps.renderer.EXPECT().RecommendedFormat("image/jpeg").Return(domain.FormatWebP).Once()
	deps.renderer.EXPECT().Render(mock.Anything, mock.Anything, "image/jpeg", small, domain.FormatWebP).
		Return(&domain.Rendition{Data: []byte("webp"), Format: domain.FormatWebP, Width: 150, Height: 150}, nil).
		Once()
	deps.derivatives.EXPECT().Put(mock.Anything, wantPath, mock.Anything, "image/webp").Return(nil).Once()
	jobs.EXPECT().Complete(mock.Anything, mock.Anything).Return(domain.ErrClaimLost).Once()
	deps.derivatives.EXPECT().Delete(mock.Anything, wantPath).Return(nil).Once()

	g.Process(context.Background(), "job-1")
}

func TestGenerator_Process_UnsupportedCountsAsFailure(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	g, deps := newTestGenerator(t, jobs, nil)
	job := claimedJob()
	job.ContentType = "video/mp4"
	job.AttemptCount = 3

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.Anything).Return(job, nil).Once()
	deps.renderer.EXPECT().Supports("video/mp4").Return(false).Once()
	jobs.EXPECT().RecordFailure(mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusFailed && j.LastError != ""
	})).Return(nil).Once()
	deps.events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventDerivativeFailed
	})).Return(nil).Once()

	g.Process(context.Background(), "job-1")
}

func TestGenerator_Process_SourceMissingIsRetried(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	g, deps := newTestGenerator(t, jobs, nil)

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.Anything).Return(claimedJob(), nil).Once()
	deps.renderer.EXPECT().Supports("image/jpeg").Return(true).Once()
	deps.sources.EXPECT().Get(mock.Anything, "files/src-1.jpg").Return(nil, domain.ErrObjectNotFound).Once()
	jobs.EXPECT().RecordFailure(mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusPending
	})).Return(nil).Once()

	g.Process(context.Background(), "job-1")
}

func TestGenerator_TransientFailuresThenSuccess(t *testing.T) {
	jobs := newSQLiteJobs(t)
	g, deps := newTestGenerator(t, jobs, nil)
	ctx := context.Background()

	job := domain.NewJob("src-1", "owner-1", small, "image/jpeg", "files/src-1.jpg", 1)
	require.NoError(t, jobs.Create(ctx, job))

	storageDown := domain.Transient("download", errors.New("storage unavailable"))
	deps.renderer.EXPECT().Supports("image/jpeg").Return(true).Times(3)
	deps.sources.EXPECT().Get(mock.Anything, "files/src-1.jpg").Return([]byte("jpeg"), nil).Times(3)
	deps.renderer.EXPECT().RecommendedFormat("image/jpeg").Return(domain.FormatWebP).Times(3)
	deps.renderer.EXPECT().Render(mock.Anything, mock.Anything, "image/jpeg", small, domain.FormatWebP).
		Return(nil, storageDown).
		Twice()
	deps.renderer.EXPECT().Render(mock.Anything, mock.Anything, "image/jpeg", small, domain.FormatWebP).
		Return(&domain.Rendition{Data: []byte("webp"), Format: domain.FormatWebP, Width: 150, Height: 100}, nil).
		Once()
	deps.derivatives.EXPECT().Put(mock.Anything, "thumbnails/owner-1/src-1/small_"+job.ID+"_3.webp", mock.Anything, "image/webp").
		Return(nil).
		Once()
	deps.events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventDerivativeReady
	})).Return(nil).Once()

	for range 3 {
		g.Process(ctx, job.ID)
	}

	got, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusReady, got.Status)
	assert.Equal(t, 3, got.AttemptCount)
	assert.Empty(t, got.LastError)
	assert.Equal(t, 150, got.Width)
	assert.Equal(t, 100, got.Height)
}

func TestGenerator_PermanentFailureExhaustsAttempts(t *testing.T) {
	jobs := newSQLiteJobs(t)
	g, deps := newTestGenerator(t, jobs, nil)
	ctx := context.Background()

	job := domain.NewJob("src-1", "owner-1", small, "image/jpeg", "files/src-1.jpg", 1)
	require.NoError(t, jobs.Create(ctx, job))

	corrupt := domain.Corrupt("decode jpeg", errors.New("unexpected EOF"))
	deps.renderer.EXPECT().Supports("image/jpeg").Return(true).Times(3)
	deps.sources.EXPECT().Get(mock.Anything, "files/src-1.jpg").Return([]byte("garbage"), nil).Times(3)
	deps.renderer.EXPECT().RecommendedFormat("image/jpeg").Return(domain.FormatWebP).Times(3)
	deps.renderer.EXPECT().Render(mock.Anything, mock.Anything, "image/jpeg", small, domain.FormatWebP).
		Return(nil, corrupt).
		Times(3)
	deps.events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventDerivativeFailed && e.Size == "SMALL" && e.Error != ""
	})).Return(nil).Once()

	// The fourth run finds nothing claimable.
	for range 4 {
		g.Process(ctx, job.ID)
	}

	got, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, 3, got.AttemptCount)
	assert.Contains(t, got.LastError, "corrupt")
}

func TestGenerator_Schedule(t *testing.T) {
	jobs := mocks.NewJobStoreMock(t)
	pool := NewWorkerPool(1, 1, zerolog.Nop())
	g, _ := newTestGenerator(t, jobs, pool)

	jobs.EXPECT().Claim(mock.Anything, "job-1", 3, mock.Anything).Return(nil, domain.ErrClaimLost).Once()

	g.Schedule("job-1")
	require.NoError(t, pool.Shutdown(context.Background()))

	// Closed pool drops the job quietly.
	g.Schedule("job-2")
}
