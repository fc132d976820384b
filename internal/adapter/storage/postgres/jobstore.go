package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/port"
)

const jobColumns = `id, source_id, owner_id, size, status, content_type, source_path, source_version,
	storage_path, format, width, height, byte_size, attempt_count, last_error, created_at, updated_at`

// JobStore implements port.JobStore on PostgreSQL. Every state change is a
// single conditional statement, so row-level locking provides the claim gate.
type JobStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewJobStore(store *Store) *JobStore {
	return &JobStore{
		pool: store.pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	query := `
INSERT INTO derivative_jobs (` + jobColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
ON CONFLICT DO NOTHING;
`
	now := s.now()
	tag, err := s.pool.Exec(ctx, query,
		job.ID,
		job.SourceID,
		job.OwnerID,
		job.Size,
		string(job.Status),
		job.ContentType,
		job.SourcePath,
		job.SourceVersion,
		job.StoragePath,
		string(job.Format),
		job.Width,
		job.Height,
		job.ByteSize,
		job.AttemptCount,
		job.LastError,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateJob
	}
	job.CreatedAt = now
	job.UpdatedAt = now
	return nil
}

func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM derivative_jobs WHERE id = $1`, id)
	return notFound(scanJob(row))
}

func (s *JobStore) FindBySourceAndSize(ctx context.Context, sourceID, size string) (*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM derivative_jobs
WHERE source_id = $1 AND size = $2 AND status <> 'DELETED';
`
	return notFound(scanJob(s.pool.QueryRow(ctx, query, sourceID, size)))
}

func (s *JobStore) ListBySource(ctx context.Context, sourceID string) ([]*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM derivative_jobs
WHERE source_id = $1 AND status <> 'DELETED'
ORDER BY created_at, size;
`
	rows, err := s.pool.Query(ctx, query, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) Latest(ctx context.Context, sourceID string) (*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM derivative_jobs
WHERE source_id = $1 AND status <> 'DELETED'
ORDER BY source_version DESC, created_at DESC
LIMIT 1;
`
	return notFound(scanJob(s.pool.QueryRow(ctx, query, sourceID)))
}

func (s *JobStore) Claim(ctx context.Context, id string, maxAttempts int, staleBefore time.Time) (*domain.Job, error) {
	query := `
UPDATE derivative_jobs
SET status = 'PROCESSING',
    attempt_count = attempt_count + 1,
    updated_at = $4
WHERE id = $1
  AND attempt_count < $2
  AND (status = 'PENDING' OR (status = 'PROCESSING' AND updated_at < $3))
RETURNING ` + jobColumns + `;
`
	job, err := scanJob(s.pool.QueryRow(ctx, query, id, maxAttempts, staleBefore, s.now()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClaimLost
	}
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	return job, nil
}

func (s *JobStore) Complete(ctx context.Context, job *domain.Job) error {
	query := `
UPDATE derivative_jobs
SET status = 'READY',
    storage_path = $3,
    format = $4,
    width = $5,
    height = $6,
    byte_size = $7,
    last_error = '',
    updated_at = $8
WHERE id = $1 AND status = 'PROCESSING' AND attempt_count = $2;
`
	now := s.now()
	tag, err := s.pool.Exec(ctx, query, job.ID, job.AttemptCount, job.StoragePath, string(job.Format),
		job.Width, job.Height, job.ByteSize, now)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return fenced(tag, job, now)
}

func (s *JobStore) RecordFailure(ctx context.Context, job *domain.Job) error {
	if job.Status != domain.JobStatusPending && job.Status != domain.JobStatusFailed {
		return fmt.Errorf("record failure: unexpected status %s", job.Status)
	}
	query := `
UPDATE derivative_jobs
SET status = $3, last_error = $4, updated_at = $5
WHERE id = $1 AND status = 'PROCESSING' AND attempt_count = $2;
`
	now := s.now()
	tag, err := s.pool.Exec(ctx, query, job.ID, job.AttemptCount, string(job.Status), job.LastError, now)
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return fenced(tag, job, now)
}

func (s *JobStore) MarkDeleted(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE derivative_jobs SET status = 'DELETED', updated_at = $2 WHERE id = $1 AND status <> 'DELETED'`,
		id, s.now())
	if err != nil {
		return fmt.Errorf("mark job deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *JobStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM derivative_jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *JobStore) FindStale(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM derivative_jobs
WHERE status IN ('PENDING', 'PROCESSING') AND updated_at < $1 AND attempt_count < $2
ORDER BY updated_at
LIMIT $3;
`
	rows, err := s.pool.Query(ctx, query, before, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("find stale jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) FindAbandoned(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM derivative_jobs
WHERE status = 'PROCESSING' AND updated_at < $1 AND attempt_count >= $2
ORDER BY updated_at
LIMIT $3;
`
	rows, err := s.pool.Query(ctx, query, before, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("find abandoned jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT status, COUNT(*) FROM derivative_jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.JobStatus(status)] = int(n)
	}
	return counts, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j              domain.Job
		status, format string
		width, height  int32
		attempts       int32
	)
	err := row.Scan(
		&j.ID,
		&j.SourceID,
		&j.OwnerID,
		&j.Size,
		&status,
		&j.ContentType,
		&j.SourcePath,
		&j.SourceVersion,
		&j.StoragePath,
		&format,
		&width,
		&height,
		&j.ByteSize,
		&attempts,
		&j.LastError,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Status = domain.JobStatus(status)
	if !j.Status.Valid() {
		return nil, fmt.Errorf("job %s: unknown status %q", j.ID, status)
	}
	j.Format = domain.Format(format)
	j.Width = int(width)
	j.Height = int(height)
	j.AttemptCount = int(attempts)
	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	return &j, nil
}

func scanJobs(rows pgx.Rows) ([]*domain.Job, error) {
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func notFound(j *domain.Job, err error) (*domain.Job, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return j, err
}

func fenced(tag pgconn.CommandTag, job *domain.Job, now time.Time) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrClaimLost
	}
	job.UpdatedAt = now
	return nil
}

var _ port.JobStore = (*JobStore)(nil)
