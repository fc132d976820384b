package port

import (
	"context"
	"time"

	"github.com/bnema/thumbd/internal/domain"
)

// JobStore is the durable record of derivative jobs. Claim, Complete and
// RecordFailure are conditional single-row updates; they return
// domain.ErrClaimLost when the row no longer matches.
type JobStore interface {
	Create(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	FindBySourceAndSize(ctx context.Context, sourceID, size string) (*domain.Job, error)
	ListBySource(ctx context.Context, sourceID string) ([]*domain.Job, error)
	Latest(ctx context.Context, sourceID string) (*domain.Job, error)

	Claim(ctx context.Context, id string, maxAttempts int, staleBefore time.Time) (*domain.Job, error)
	Complete(ctx context.Context, job *domain.Job) error
	RecordFailure(ctx context.Context, job *domain.Job) error

	MarkDeleted(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	FindStale(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error)
	// FindAbandoned returns PROCESSING jobs on their last allowed attempt
	// whose worker has not reported since before.
	FindAbandoned(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error)
	CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error)
}
