package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
)

// sweepBatch caps how many jobs one sweep resubmits.
const sweepBatch = 500

var errAbandoned = errors.New("worker abandoned final attempt")

// Resubmitter queues a job for another attempt without running it on the
// calling goroutine.
type Resubmitter interface {
	Resubmit(jobID string) error
}

type SweeperConfig struct {
	Interval    time.Duration
	StaleAfter  time.Duration
	MaxAttempts int
}

// Sweeper resubmits jobs that have not moved for longer than StaleAfter:
// retries waiting after a failed attempt, rows left PENDING by a full or
// closed pool, and PROCESSING rows of crashed workers. A crashed final
// attempt has nothing left to retry and is failed instead.
type Sweeper struct {
	jobs        port.JobStore
	resubmitter Resubmitter
	events      port.EventPublisher
	cfg         SweeperConfig
	log         zerolog.Logger
	now         func() time.Time
}

func NewSweeper(jobs port.JobStore, resubmitter Resubmitter, events port.EventPublisher, cfg SweeperConfig, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		jobs:        jobs,
		resubmitter: resubmitter,
		events:      events,
		cfg:         cfg,
		log:         logger.Component(log, "sweeper"),
		now:         time.Now,
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
		s.log.Error().Err(err).Msg("sweep failed")
	}
}

// SweepOnce fails abandoned final attempts, then resubmits stale jobs until
// the pool queue is full. It returns how many jobs it moved.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	before := s.now().Add(-s.cfg.StaleAfter)

	failed, err := s.failAbandoned(ctx, before)
	if err != nil {
		return failed, err
	}

	stale, err := s.jobs.FindStale(ctx, before, s.cfg.MaxAttempts, sweepBatch)
	if err != nil {
		return failed, err
	}
	resubmitted := 0
	for _, job := range stale {
		if err := s.resubmitter.Resubmit(job.ID); err != nil {
			s.log.Info().
				Err(err).
				Int("remaining", len(stale)-resubmitted).
				Msg("pool not accepting work, leaving jobs for the next sweep")
			break
		}
		s.log.Debug().
			Str("job_id", job.ID).
			Str("status", string(job.Status)).
			Int("attempts", job.AttemptCount).
			Msg("resubmitted stale job")
		resubmitted++
	}
	if resubmitted > 0 {
		s.log.Info().Int("jobs", resubmitted).Msg("stale jobs resubmitted")
	}
	return failed + resubmitted, nil
}

func (s *Sweeper) failAbandoned(ctx context.Context, before time.Time) (int, error) {
	abandoned, err := s.jobs.FindAbandoned(ctx, before, s.cfg.MaxAttempts, sweepBatch)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, job := range abandoned {
		log := s.log.With().Str("job_id", job.ID).Int("attempts", job.AttemptCount).Logger()

		if _, err := job.MarkAttemptFailed(errAbandoned, s.cfg.MaxAttempts); err != nil {
			log.Error().Err(err).Msg("cannot fail abandoned job")
			continue
		}
		if err := s.jobs.RecordFailure(ctx, job); err != nil {
			if errors.Is(err, domain.ErrClaimLost) {
				log.Debug().Msg("abandoned job moved on meanwhile")
				continue
			}
			return failed, err
		}
		failed++
		log.Warn().Str("source_id", logger.SanitizeForLog(job.SourceID)).Msg("final attempt abandoned, job failed")

		if s.events != nil {
			if err := s.events.Publish(ctx, domain.NewFailedEvent(job)); err != nil {
				log.Error().Err(err).Msg("failed to publish event")
			}
		}
	}
	return failed, nil
}
