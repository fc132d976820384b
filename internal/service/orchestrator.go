package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
)

// Scheduler accepts job ids for asynchronous processing.
type Scheduler interface {
	Schedule(jobID string)
}

type GenerationRequest struct {
	SourceID      string
	OwnerID       string
	Sizes         []string
	Force         bool
	SourceVersion int64
	ContentType   string
	StoragePath   string
}

// Orchestrator owns the job rows of every source: it creates them, reports
// on them and tears them down.
type Orchestrator struct {
	jobs        port.JobStore
	derivatives port.ObjectStorage
	renderer    port.Renderer
	events      port.EventPublisher
	scheduler   Scheduler
	sizes       *domain.SizeSet
	urlTTL      time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

func NewOrchestrator(
	jobs port.JobStore,
	derivatives port.ObjectStorage,
	renderer port.Renderer,
	events port.EventPublisher,
	scheduler Scheduler,
	sizes *domain.SizeSet,
	urlTTL time.Duration,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		jobs:        jobs,
		derivatives: derivatives,
		renderer:    renderer,
		events:      events,
		scheduler:   scheduler,
		sizes:       sizes,
		urlTTL:      urlTTL,
		log:         logger.Component(log, "orchestrator"),
		now:         time.Now,
	}
}

// RequestGeneration makes sure a job exists for every requested size and
// schedules the ones it created. Unsupported content is a no-op.
func (o *Orchestrator) RequestGeneration(ctx context.Context, req GenerationRequest) (*domain.StatusSnapshot, error) {
	if req.SourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", domain.ErrInvalidRequest)
	}
	sizes, err := o.sizes.Resolve(req.Sizes)
	if err != nil {
		return nil, err
	}

	if req.ContentType == "" || req.StoragePath == "" {
		if err := o.resolveSource(ctx, &req); err != nil {
			return nil, err
		}
	}

	log := o.log.With().
		Str("source_id", logger.SanitizeForLog(req.SourceID)).
		Str("content_type", logger.SanitizeForLog(req.ContentType)).
		Logger()

	if !o.renderer.Supports(req.ContentType) {
		log.Info().Msg("content type not supported, no derivatives generated")
		return o.GetStatus(ctx, req.SourceID)
	}

	var created []string
	for _, size := range sizes {
		id, err := o.ensureJob(ctx, req, size)
		if err != nil {
			return nil, fmt.Errorf("size %s: %w", size.Name, err)
		}
		if id != "" {
			created = append(created, id)
		}
	}

	for _, id := range created {
		o.scheduler.Schedule(id)
	}
	if len(created) > 0 {
		log.Info().Int("jobs", len(created)).Bool("force", req.Force).Msg("derivative jobs scheduled")
	}

	return o.GetStatus(ctx, req.SourceID)
}

// resolveSource fills the content type and path from the newest job of the
// source, for callers that only know the source id.
func (o *Orchestrator) resolveSource(ctx context.Context, req *GenerationRequest) error {
	latest, err := o.jobs.Latest(ctx, req.SourceID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrSourceUnknown
	}
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	if req.ContentType == "" {
		req.ContentType = latest.ContentType
	}
	if req.StoragePath == "" {
		req.StoragePath = latest.SourcePath
	}
	if req.OwnerID == "" {
		req.OwnerID = latest.OwnerID
	}
	if req.SourceVersion == 0 {
		req.SourceVersion = latest.SourceVersion
	}
	return nil
}

// ensureJob returns the id of a job it inserted, or "" when an existing job
// is kept.
func (o *Orchestrator) ensureJob(ctx context.Context, req GenerationRequest, size domain.Size) (string, error) {
	existing, err := o.jobs.FindBySourceAndSize(ctx, req.SourceID, size.Name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return "", err
	default:
		if !req.Force && !existing.Stale(req.SourceVersion) {
			return "", nil
		}
		if _, err := o.removeJob(ctx, existing); err != nil {
			return "", err
		}
	}

	job := domain.NewJob(req.SourceID, req.OwnerID, size, req.ContentType, req.StoragePath, req.SourceVersion)
	if err := o.jobs.Create(ctx, job); err != nil {
		if errors.Is(err, domain.ErrDuplicateJob) {
			// A concurrent request created it first.
			return "", nil
		}
		return "", err
	}
	return job.ID, nil
}

// removeJob fences in-flight workers, drops the derivative object, then the
// row. It reports whether this call removed the job.
func (o *Orchestrator) removeJob(ctx context.Context, job *domain.Job) (bool, error) {
	err := o.jobs.MarkDeleted(ctx, job.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mark job %s deleted: %w", job.ID, err)
	}
	if job.StoragePath != "" {
		if err := o.derivatives.Delete(ctx, job.StoragePath); err != nil {
			o.log.Warn().Err(err).Str("path", job.StoragePath).Msg("failed to delete derivative object")
		}
	}
	if err := o.jobs.Delete(ctx, job.ID); err != nil {
		return false, fmt.Errorf("delete job %s: %w", job.ID, err)
	}
	return true, nil
}

func (o *Orchestrator) GetStatus(ctx context.Context, sourceID string) (*domain.StatusSnapshot, error) {
	jobs, err := o.jobs.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	snap := domain.NewSnapshot(sourceID, jobs)
	for i, j := range jobs {
		if j.Status != domain.JobStatusReady {
			continue
		}
		url, err := o.derivatives.SignedURL(ctx, j.StoragePath, o.urlTTL)
		if err != nil {
			o.log.Warn().Err(err).Str("job_id", j.ID).Msg("failed to sign derivative url")
			continue
		}
		snap.PerSize[i].URL = url
	}
	return snap, nil
}

func (o *Orchestrator) ListReady(ctx context.Context, sourceID string) ([]domain.Derivative, error) {
	jobs, err := o.jobs.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	out := make([]domain.Derivative, 0, len(jobs))
	for _, j := range jobs {
		if j.Status != domain.JobStatusReady {
			continue
		}
		d, err := o.derivative(ctx, j)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// Get returns the ready derivative of one size.
func (o *Orchestrator) Get(ctx context.Context, sourceID, sizeName string) (*domain.Derivative, error) {
	size, ok := o.sizes.Lookup(sizeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSize, sizeName)
	}
	job, err := o.jobs.FindBySourceAndSize(ctx, sourceID, size.Name)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusReady {
		return nil, fmt.Errorf("derivative %s is %s: %w", size.Name, job.Status, domain.ErrNotFound)
	}
	return o.derivative(ctx, job)
}

func (o *Orchestrator) derivative(ctx context.Context, j *domain.Job) (*domain.Derivative, error) {
	url, err := o.derivatives.SignedURL(ctx, j.StoragePath, o.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("sign url for %s: %w", j.Size, err)
	}
	return &domain.Derivative{
		Size:      j.Size,
		URL:       url,
		Format:    j.Format,
		Width:     j.Width,
		Height:    j.Height,
		ByteSize:  j.ByteSize,
		ExpiresAt: o.now().Add(o.urlTTL).UTC(),
	}, nil
}

// DeleteAll removes every derivative of the source owned by ownerID. One
// deleted event is emitted when anything was removed; repeating the call is
// harmless.
func (o *Orchestrator) DeleteAll(ctx context.Context, sourceID, ownerID string) error {
	jobs, err := o.jobs.ListBySource(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	removed := 0
	for _, j := range jobs {
		if ownerID != "" && j.OwnerID != ownerID {
			continue
		}
		ok, err := o.removeJob(ctx, j)
		if err != nil {
			return err
		}
		if ok {
			removed++
		}
	}

	if removed == 0 {
		return nil
	}
	o.log.Info().
		Str("source_id", logger.SanitizeForLog(sourceID)).
		Int("removed", removed).
		Msg("derivatives deleted")

	if o.events != nil {
		if err := o.events.Publish(ctx, domain.NewDeletedEvent(sourceID, ownerID)); err != nil {
			o.log.Error().Err(err).Msg("failed to publish deleted event")
		}
	}
	return nil
}

func (o *Orchestrator) Counts(ctx context.Context) (map[domain.JobStatus]int, error) {
	return o.jobs.CountByStatus(ctx)
}
