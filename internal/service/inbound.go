package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
)

// SourceEvents translates notifications of the upload service into
// orchestrator calls.
type SourceEvents struct {
	orch *Orchestrator
	log  zerolog.Logger
}

func NewSourceEvents(orch *Orchestrator, log zerolog.Logger) *SourceEvents {
	return &SourceEvents{orch: orch, log: logger.Component(log, "source-events")}
}

// Register binds both handlers to their channels.
func (s *SourceEvents) Register(sub port.EventSubscriber, uploadedChannel, deletedChannel string) {
	sub.Subscribe(uploadedChannel, s.HandleUploaded)
	sub.Subscribe(deletedChannel, s.HandleDeleted)
}

func (s *SourceEvents) HandleUploaded(ctx context.Context, payload []byte) error {
	var ev domain.SourceUploaded
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: decode uploaded event: %v", domain.ErrInvalidRequest, err)
	}
	if ev.SourceID == "" || ev.ContentType == "" || ev.StoragePath == "" {
		return fmt.Errorf("%w: uploaded event misses sourceId, contentType or storagePath", domain.ErrInvalidRequest)
	}

	s.log.Debug().
		Str("source_id", logger.SanitizeForLog(ev.SourceID)).
		Int64("version", ev.SourceVersion).
		Msg("source uploaded")

	_, err := s.orch.RequestGeneration(ctx, GenerationRequest{
		SourceID:      ev.SourceID,
		OwnerID:       ev.OwnerID,
		SourceVersion: ev.SourceVersion,
		ContentType:   ev.ContentType,
		StoragePath:   ev.StoragePath,
	})
	return err
}

func (s *SourceEvents) HandleDeleted(ctx context.Context, payload []byte) error {
	var ev domain.SourceDeleted
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: decode deleted event: %v", domain.ErrInvalidRequest, err)
	}
	if ev.SourceID == "" {
		return fmt.Errorf("%w: deleted event misses sourceId", domain.ErrInvalidRequest)
	}

	s.log.Debug().Str("source_id", logger.SanitizeForLog(ev.SourceID)).Msg("source deleted")
	return s.orch.DeleteAll(ctx, ev.SourceID, ev.OwnerID)
}
