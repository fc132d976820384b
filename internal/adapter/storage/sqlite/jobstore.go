package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/port"
)

const jobColumns = `id, source_id, owner_id, size, status, content_type, source_path, source_version,
	storage_path, format, width, height, byte_size, attempt_count, last_error, created_at, updated_at`

type JobStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewJobStore(store *Store) *JobStore {
	return &JobStore{
		db:  store.db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO derivative_jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		job.ID, job.SourceID, job.OwnerID, job.Size, string(job.Status), job.ContentType, job.SourcePath,
		job.SourceVersion, job.StoragePath, string(job.Format), job.Width, job.Height, job.ByteSize,
		job.AttemptCount, job.LastError, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDuplicateJob
	}
	job.CreatedAt = time.UnixMilli(now.UnixMilli()).UTC()
	job.UpdatedAt = job.CreatedAt
	return nil
}

func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM derivative_jobs WHERE id = ?`, id)
	return notFound(scanJob(row))
}

func (s *JobStore) FindBySourceAndSize(ctx context.Context, sourceID, size string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+` FROM derivative_jobs
		WHERE source_id = ? AND size = ? AND status <> 'DELETED'`, sourceID, size)
	return notFound(scanJob(row))
}

func (s *JobStore) ListBySource(ctx context.Context, sourceID string) ([]*domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM derivative_jobs
		WHERE source_id = ? AND status <> 'DELETED'
		ORDER BY created_at, size`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) Latest(ctx context.Context, sourceID string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+` FROM derivative_jobs
		WHERE source_id = ? AND status <> 'DELETED'
		ORDER BY source_version DESC, created_at DESC
		LIMIT 1`, sourceID)
	return notFound(scanJob(row))
}

// Claim moves a PENDING job, or a PROCESSING job abandoned before
// staleBefore, into PROCESSING and counts the attempt.
func (s *JobStore) Claim(ctx context.Context, id string, maxAttempts int, staleBefore time.Time) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE derivative_jobs
		SET status = 'PROCESSING', attempt_count = attempt_count + 1, updated_at = ?
		WHERE id = ?
		  AND attempt_count < ?
		  AND (status = 'PENDING' OR (status = 'PROCESSING' AND updated_at < ?))
		RETURNING `+jobColumns,
		s.now().UnixMilli(), id, maxAttempts, staleBefore.UnixMilli(),
	)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClaimLost
	}
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	return job, nil
}

func (s *JobStore) Complete(ctx context.Context, job *domain.Job) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE derivative_jobs
		SET status = 'READY', storage_path = ?, format = ?, width = ?, height = ?, byte_size = ?,
		    last_error = '', updated_at = ?
		WHERE id = ? AND status = 'PROCESSING' AND attempt_count = ?`,
		job.StoragePath, string(job.Format), job.Width, job.Height, job.ByteSize,
		now.UnixMilli(), job.ID, job.AttemptCount,
	)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return fenced(res, job, now)
}

func (s *JobStore) RecordFailure(ctx context.Context, job *domain.Job) error {
	if job.Status != domain.JobStatusPending && job.Status != domain.JobStatusFailed {
		return fmt.Errorf("record failure: unexpected status %s", job.Status)
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE derivative_jobs
		SET status = ?, last_error = ?, updated_at = ?
		WHERE id = ? AND status = 'PROCESSING' AND attempt_count = ?`,
		string(job.Status), job.LastError, now.UnixMilli(), job.ID, job.AttemptCount,
	)
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return fenced(res, job, now)
}

func (s *JobStore) MarkDeleted(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE derivative_jobs SET status = 'DELETED', updated_at = ?
		WHERE id = ? AND status <> 'DELETED'`, s.now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("mark job deleted: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *JobStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM derivative_jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *JobStore) FindStale(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM derivative_jobs
		WHERE status IN ('PENDING', 'PROCESSING') AND updated_at < ? AND attempt_count < ?
		ORDER BY updated_at
		LIMIT ?`, before.UnixMilli(), maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("find stale jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) FindAbandoned(ctx context.Context, before time.Time, maxAttempts, limit int) ([]*domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM derivative_jobs
		WHERE status = 'PROCESSING' AND updated_at < ? AND attempt_count >= ?
		ORDER BY updated_at
		LIMIT ?`, before.UnixMilli(), maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("find abandoned jobs: %w", err)
	}
	return scanJobs(rows)
}

func (s *JobStore) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM derivative_jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.JobStatus(status)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		j                domain.Job
		status, format   string
		created, updated int64
	)
	err := row.Scan(&j.ID, &j.SourceID, &j.OwnerID, &j.Size, &status, &j.ContentType, &j.SourcePath,
		&j.SourceVersion, &j.StoragePath, &format, &j.Width, &j.Height, &j.ByteSize, &j.AttemptCount,
		&j.LastError, &created, &updated)
	if err != nil {
		return nil, err
	}
	j.Status = domain.JobStatus(status)
	if !j.Status.Valid() {
		return nil, fmt.Errorf("job %s: unknown status %q", j.ID, status)
	}
	j.Format = domain.Format(format)
	j.CreatedAt = time.UnixMilli(created).UTC()
	j.UpdatedAt = time.UnixMilli(updated).UTC()
	return &j, nil
}

func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
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
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return j, err
}

// fenced turns a zero-row conditional update into ErrClaimLost.
func fenced(res sql.Result, job *domain.Job, now time.Time) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrClaimLost
	}
	job.UpdatedAt = time.UnixMilli(now.UnixMilli()).UTC()
	return nil
}

var _ port.JobStore = (*JobStore)(nil)
