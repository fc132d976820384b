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

// bookkeepingTimeout bounds store writes made after the task context is gone.
const bookkeepingTimeout = 10 * time.Second

type GeneratorConfig struct {
	Sizes       *domain.SizeSet
	MaxAttempts int
	StaleAfter  time.Duration
}

// Generator runs one attempt of a derivative job: claim, download, render,
// upload, complete. It is the body of every pool task.
type Generator struct {
	jobs        port.JobStore
	sources     port.ObjectStorage
	derivatives port.ObjectStorage
	renderer    port.Renderer
	events      port.EventPublisher
	pool        *WorkerPool
	cfg         GeneratorConfig
	log         zerolog.Logger
	now         func() time.Time
}

func NewGenerator(
	jobs port.JobStore,
	sources port.ObjectStorage,
	derivatives port.ObjectStorage,
	renderer port.Renderer,
	events port.EventPublisher,
	pool *WorkerPool,
	cfg GeneratorConfig,
	log zerolog.Logger,
) *Generator {
	return &Generator{
		jobs:        jobs,
		sources:     sources,
		derivatives: derivatives,
		renderer:    renderer,
		events:      events,
		pool:        pool,
		cfg:         cfg,
		log:         logger.Component(log, "generator"),
		now:         time.Now,
	}
}

// Schedule hands the job to the worker pool. A closed pool leaves the row
// PENDING for the sweeper of the next process.
func (g *Generator) Schedule(jobID string) {
	err := g.pool.Submit(func(ctx context.Context) {
		g.Process(ctx, jobID)
	})
	if err != nil {
		g.log.Warn().Err(err).Str("job_id", jobID).Msg("job not scheduled")
	}
}

// Resubmit queues the job without the caller-runs fallback of Schedule.
func (g *Generator) Resubmit(jobID string) error {
	return g.pool.TrySubmit(func(ctx context.Context) {
		g.Process(ctx, jobID)
	})
}

// Process runs a single attempt. Failures are recorded on the job row and
// never returned.
func (g *Generator) Process(ctx context.Context, jobID string) {
	log := g.log.With().Str("job_id", jobID).Logger()

	job, err := g.jobs.Claim(ctx, jobID, g.cfg.MaxAttempts, g.now().Add(-g.cfg.StaleAfter))
	if err != nil {
		if errors.Is(err, domain.ErrClaimLost) || errors.Is(err, domain.ErrNotFound) {
			log.Debug().Msg("job not claimable, skipping")
			return
		}
		log.Error().Err(err).Msg("failed to claim job")
		return
	}

	log = log.With().
		Str("source_id", logger.SanitizeForLog(job.SourceID)).
		Str("size", job.Size).
		Int("attempt", job.AttemptCount).
		Logger()
	log.Debug().Msg("job claimed")

	if err := g.generate(ctx, job); err != nil {
		g.recordFailure(ctx, job, err, log)
		return
	}

	log.Info().
		Str("path", job.StoragePath).
		Int("width", job.Width).
		Int("height", job.Height).
		Msg("derivative ready")
	g.publish(ctx, domain.NewReadyEvent(job), log)
}

func (g *Generator) generate(ctx context.Context, job *domain.Job) error {
	box, ok := g.cfg.Sizes.Lookup(job.Size)
	if !ok {
		return &domain.RenderError{Kind: domain.ErrUnsupported, Op: "lookup size", Err: fmt.Errorf("%w: %s", domain.ErrUnknownSize, job.Size)}
	}
	if !g.renderer.Supports(job.ContentType) {
		return &domain.RenderError{Kind: domain.ErrUnsupported, Op: "render " + job.ContentType}
	}

	src, err := g.sources.Get(ctx, job.SourcePath)
	if err != nil {
		return fmt.Errorf("download source: %w", err)
	}

	format := g.renderer.RecommendedFormat(job.ContentType)
	out, err := g.renderer.Render(ctx, src, job.ContentType, box, format)
	if err != nil {
		return err
	}

	path := job.DerivativePath(out.Format)
	if err := g.derivatives.Put(ctx, path, out.Data, out.Format.ContentType()); err != nil {
		return fmt.Errorf("upload derivative: %w", err)
	}

	bctx, cancel := g.bookkeeping(ctx)
	defer cancel()
	err = job.MarkReady(path, out.Format, out.Width, out.Height, int64(len(out.Data)))
	if err == nil {
		err = g.jobs.Complete(bctx, job)
	}
	if err != nil {
		// Our object is unreachable from any row now.
		if delErr := g.derivatives.Delete(bctx, path); delErr != nil {
			g.log.Warn().Err(delErr).Str("path", path).Msg("failed to remove orphaned derivative")
		}
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

func (g *Generator) recordFailure(ctx context.Context, job *domain.Job, cause error, log zerolog.Logger) {
	if errors.Is(cause, domain.ErrClaimLost) {
		log.Debug().Msg("job was taken over or deleted, dropping attempt")
		return
	}

	status, err := job.MarkAttemptFailed(cause, g.cfg.MaxAttempts)
	if err != nil {
		log.Error().Err(err).AnErr("cause", cause).Msg("failed to record attempt failure")
		return
	}

	bctx, cancel := g.bookkeeping(ctx)
	defer cancel()
	if err := g.jobs.RecordFailure(bctx, job); err != nil {
		if errors.Is(err, domain.ErrClaimLost) {
			log.Debug().Msg("job was taken over or deleted, dropping failure")
			return
		}
		log.Error().Err(err).AnErr("cause", cause).Msg("failed to record attempt failure")
		return
	}

	log.Warn().
		Err(cause).
		Str("kind", domain.FailureKind(cause)).
		Str("status", string(status)).
		Msg("attempt failed")

	if status == domain.JobStatusFailed {
		g.publish(bctx, domain.NewFailedEvent(job), log)
	}
}

func (g *Generator) publish(ctx context.Context, event domain.Event, log zerolog.Logger) {
	if g.events == nil {
		return
	}
	if err := g.events.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event", string(event.Type)).Msg("failed to publish event")
	}
}

// bookkeeping detaches from task cancellation so a forced shutdown still
// leaves the row in a consistent state.
func (g *Generator) bookkeeping(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
}
