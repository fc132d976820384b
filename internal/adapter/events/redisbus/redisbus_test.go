package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/thumbd/internal/domain"
)

// Runs against a live Redis when TEST_REDIS_URL is set, e.g.
// TEST_REDIS_URL=redis://localhost:6379/15
func newTestClient(t *testing.T) *Consumer {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewConsumer(client, zerolog.Nop())
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestConsumer_RoundTrip(t *testing.T) {
	consumer := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channel := "thumbd-test-" + uuid.NewString()
	t.Cleanup(func() { consumer.rdb.Del(context.Background(), channel, channel+deadLetterSuffix) })

	got := make(chan domain.Event, 1)
	consumer.Subscribe(channel, func(_ context.Context, payload []byte) error {
		var ev domain.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			return err
		}
		got <- ev
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	sent := domain.NewDeletedEvent("src-1", "owner-1")
	require.NoError(t, NewPublisher(consumer.rdb, channel).Publish(ctx, sent))

	select {
	case ev := <-got:
		assert.Equal(t, sent.ID, ev.ID)
	case <-ctx.Done():
		t.Fatal("event not consumed")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestConsumer_DeadLettersRejectedMessages(t *testing.T) {
	consumer := newTestClient(t)
	ctx := context.Background()

	channel := "thumbd-test-" + uuid.NewString()
	t.Cleanup(func() { consumer.rdb.Del(ctx, channel, channel+deadLetterSuffix) })

	consumer.Subscribe(channel, func(context.Context, []byte) error {
		return errors.New("rejected")
	})
	consumer.handle(ctx, channel, []byte(`{"sourceId":"x"}`))

	n, err := consumer.rdb.LLen(ctx, channel+deadLetterSuffix).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
