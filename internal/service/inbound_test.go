package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/thumbd/internal/domain"
)

func TestSourceEvents_HandleUploaded(t *testing.T) {
	env := newOrchestratorEnv(t)
	h := NewSourceEvents(env.orch, zerolog.Nop())
	ctx := context.Background()

	payload := `{"sourceId":"src-1","ownerId":"owner-1","contentType":"image/jpeg","storagePath":"files/src-1.jpg","sourceVersion":4}`
	require.NoError(t, h.HandleUploaded(ctx, []byte(payload)))

	jobs, err := env.jobs.ListBySource(ctx, "src-1")
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	for _, j := range jobs {
		assert.Equal(t, int64(4), j.SourceVersion)
		assert.Equal(t, "owner-1", j.OwnerID)
	}

	// Redelivery of the same event is harmless.
	require.NoError(t, h.HandleUploaded(ctx, []byte(payload)))
	assert.Len(t, env.sched.scheduled(), 3)
}

func TestSourceEvents_HandleUploaded_UnsupportedType(t *testing.T) {
	env := newOrchestratorEnv(t)
	h := NewSourceEvents(env.orch, zerolog.Nop())

	payload := `{"sourceId":"src-1","ownerId":"owner-1","contentType":"text/plain","storagePath":"files/notes.txt","sourceVersion":1}`
	require.NoError(t, h.HandleUploaded(context.Background(), []byte(payload)))

	snap, err := env.orch.GetStatus(context.Background(), "src-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, snap.OverallStatus)
	assert.Empty(t, snap.PerSize)
}

func TestSourceEvents_RejectsMalformedPayloads(t *testing.T) {
	env := newOrchestratorEnv(t)
	h := NewSourceEvents(env.orch, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name    string
		handle  func(context.Context, []byte) error
		payload string
	}{
		{"uploaded not json", h.HandleUploaded, `not json`},
		{"uploaded missing path", h.HandleUploaded, `{"sourceId":"src-1","contentType":"image/png"}`},
		{"deleted not json", h.HandleDeleted, `[`},
		{"deleted missing source", h.HandleDeleted, `{"ownerId":"owner-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.handle(ctx, []byte(tt.payload))
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestSourceEvents_HandleDeleted(t *testing.T) {
	env := newOrchestratorEnv(t)
	h := NewSourceEvents(env.orch, zerolog.Nop())
	ctx := context.Background()

	_, err := env.orch.RequestGeneration(ctx, uploadRequest("src-1"))
	require.NoError(t, err)

	env.events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventDerivativeDeleted
	})).Return(nil).Once()

	payload := []byte(`{"sourceId":"src-1","ownerId":"owner-1"}`)
	require.NoError(t, h.HandleDeleted(ctx, payload))
	require.NoError(t, h.HandleDeleted(ctx, payload))

	jobs, err := env.jobs.ListBySource(ctx, "src-1")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
