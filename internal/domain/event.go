package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventDerivativeReady   EventType = "derivative.ready"
	EventDerivativeFailed  EventType = "derivative.failed"
	EventDerivativeDeleted EventType = "derivative.deleted"
)

// EventOrigin tags every outbound event.
const EventOrigin = "thumbd"

// Event is the outbound notification envelope.
type Event struct {
	ID          string    `json:"eventId"`
	Type        EventType `json:"eventType"`
	SourceID    string    `json:"sourceId"`
	OwnerID     string    `json:"ownerId,omitempty"`
	Size        string    `json:"size,omitempty"`
	StoragePath string    `json:"storagePath,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	Error       string    `json:"error,omitempty"`
	OccurredAt  time.Time `json:"timestamp"`
	Origin      string    `json:"source"`
}

func newEvent(t EventType, sourceID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		SourceID:   sourceID,
		OccurredAt: time.Now().UTC(),
		Origin:     EventOrigin,
	}
}

func NewReadyEvent(j *Job) Event {
	e := newEvent(EventDerivativeReady, j.SourceID)
	e.OwnerID = j.OwnerID
	e.Size = j.Size
	e.StoragePath = j.StoragePath
	e.Width = j.Width
	e.Height = j.Height
	return e
}

func NewFailedEvent(j *Job) Event {
	e := newEvent(EventDerivativeFailed, j.SourceID)
	e.OwnerID = j.OwnerID
	e.Size = j.Size
	e.Error = j.LastError
	return e
}

func NewDeletedEvent(sourceID, ownerID string) Event {
	e := newEvent(EventDerivativeDeleted, sourceID)
	e.OwnerID = ownerID
	return e
}

// SourceUploaded is published by the upload service once source bytes are stored.
type SourceUploaded struct {
	SourceID      string `json:"sourceId"`
	OwnerID       string `json:"ownerId"`
	ContentType   string `json:"contentType"`
	StoragePath   string `json:"storagePath"`
	SourceVersion int64  `json:"sourceVersion"`
}

// SourceDeleted is published by the upload service when a source is removed.
type SourceDeleted struct {
	SourceID string `json:"sourceId"`
	OwnerID  string `json:"ownerId"`
}
