package domain

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusReady      JobStatus = "READY"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusDeleted    JobStatus = "DELETED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusReady, JobStatusFailed, JobStatusDeleted:
		return true
	}
	return false
}

// Active reports whether the job is still owed work by the pipeline.
func (s JobStatus) Active() bool {
	return s == JobStatusPending || s == JobStatusProcessing
}

// Job is one derivative request for a (source, size) pair.
type Job struct {
	ID            string    `json:"id"`
	SourceID      string    `json:"source_id"`
	OwnerID       string    `json:"owner_id"`
	Size          string    `json:"size"`
	Status        JobStatus `json:"status"`
	ContentType   string    `json:"content_type"`
	SourcePath    string    `json:"source_path"`
	SourceVersion int64     `json:"source_version"`
	StoragePath   string    `json:"storage_path,omitempty"`
	Format        Format    `json:"format,omitempty"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
	ByteSize      int64     `json:"byte_size,omitempty"`
	AttemptCount  int       `json:"attempt_count"`
	LastError     string    `json:"last_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewJob(sourceID, ownerID string, size Size, contentType, sourcePath string, sourceVersion int64) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:            uuid.NewString(),
		SourceID:      sourceID,
		OwnerID:       ownerID,
		Size:          size.Name,
		Status:        JobStatusPending,
		ContentType:   contentType,
		SourcePath:    sourcePath,
		SourceVersion: sourceVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransition encodes the job state machine. A PROCESSING job may be
// re-claimed into PROCESSING when its worker is presumed dead.
func CanTransition(from, to JobStatus) bool {
	if from == JobStatusDeleted {
		return false
	}
	if to == JobStatusDeleted {
		return true
	}
	switch from {
	case JobStatusPending:
		return to == JobStatusProcessing
	case JobStatusProcessing:
		return to == JobStatusReady || to == JobStatusPending || to == JobStatusFailed || to == JobStatusProcessing
	}
	return false
}

// DerivativePath returns where the output of the current attempt is stored.
// Every attempt gets its own key so a fenced-out attempt can remove its
// upload without touching the winner's object.
func (j *Job) DerivativePath(format Format) string {
	name := fmt.Sprintf("%s_%s_%d.%s", strings.ToLower(j.Size), j.ID, j.AttemptCount, format.Extension())
	return path.Join("thumbnails", j.OwnerID, j.SourceID, name)
}

// MarkReady records a successful attempt. Only a PROCESSING job can become
// READY.
func (j *Job) MarkReady(storagePath string, format Format, width, height int, byteSize int64) error {
	if !CanTransition(j.Status, JobStatusReady) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, j.Status, JobStatusReady)
	}
	j.Status = JobStatusReady
	j.StoragePath = storagePath
	j.Format = format
	j.Width = width
	j.Height = height
	j.ByteSize = byteSize
	j.LastError = ""
	return nil
}

// MarkAttemptFailed records a failed attempt and returns the status the job
// moves to: back to PENDING while attempts remain, FAILED once exhausted.
func (j *Job) MarkAttemptFailed(cause error, maxAttempts int) (JobStatus, error) {
	next := JobStatusPending
	if j.AttemptCount >= maxAttempts {
		next = JobStatusFailed
	}
	if !CanTransition(j.Status, next) {
		return j.Status, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, j.Status, next)
	}
	j.Status = next
	j.LastError = cause.Error()
	return next, nil
}

// Stale reports whether the job version predates the given source version.
func (j *Job) Stale(sourceVersion int64) bool {
	return sourceVersion > j.SourceVersion
}
