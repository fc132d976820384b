package domain

import "time"

type SizeStatus struct {
	Size         string    `json:"size"`
	Status       JobStatus `json:"status"`
	URL          string    `json:"url,omitempty"`
	AttemptCount int       `json:"attemptCount"`
	LastError    string    `json:"lastError,omitempty"`
}

type StatusSnapshot struct {
	SourceID      string       `json:"sourceId"`
	OverallStatus JobStatus    `json:"overallStatus"`
	PerSize       []SizeStatus `json:"perSize"`
}

type Derivative struct {
	Size      string    `json:"size"`
	URL       string    `json:"url"`
	Format    Format    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	ByteSize  int64     `json:"byteSize"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Aggregate folds per-size statuses into the source-level status. A source
// without jobs is PENDING.
func Aggregate(jobs []*Job) JobStatus {
	if len(jobs) == 0 {
		return JobStatusPending
	}
	active := false
	for _, j := range jobs {
		if j.Status == JobStatusFailed {
			return JobStatusFailed
		}
		active = active || j.Status.Active()
	}
	if active {
		return JobStatusProcessing
	}
	return JobStatusReady
}

func NewSnapshot(sourceID string, jobs []*Job) *StatusSnapshot {
	snap := &StatusSnapshot{
		SourceID:      sourceID,
		OverallStatus: Aggregate(jobs),
		PerSize:       make([]SizeStatus, 0, len(jobs)),
	}
	for _, j := range jobs {
		snap.PerSize = append(snap.PerSize, SizeStatus{
			Size:         j.Size,
			Status:       j.Status,
			AttemptCount: j.AttemptCount,
			LastError:    j.LastError,
		})
	}
	return snap
}
