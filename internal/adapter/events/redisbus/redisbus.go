package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/backoff"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
)

// popTimeout bounds each BRPOP so subscriptions added later are picked up.
const popTimeout = 5 * time.Second

// deadLetterSuffix names the list that keeps messages a handler rejected.
const deadLetterSuffix = ".dlq"

func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Publisher pushes outbound events onto a Redis list.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("push event to %s: %w", p.channel, err)
	}
	return nil
}

// Consumer pops inbound messages from Redis lists, one list per channel.
type Consumer struct {
	rdb     *redis.Client
	backoff *backoff.Backoff
	log     zerolog.Logger

	mu       sync.RWMutex
	handlers map[string]port.MessageHandler
}

func NewConsumer(rdb *redis.Client, log zerolog.Logger) *Consumer {
	return &Consumer{
		rdb:      rdb,
		backoff:  backoff.New(200*time.Millisecond, 30*time.Second, 2.0),
		log:      logger.Component(log, "redis-consumer"),
		handlers: make(map[string]port.MessageHandler),
	}
}

func (c *Consumer) Subscribe(channel string, handler port.MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[channel] = handler
}

func (c *Consumer) channels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.handlers))
	for k := range c.handlers {
		keys = append(keys, k)
	}
	return keys
}

// Run pops messages until ctx is done. Connection errors back off
// exponentially; handler errors move the message to the dead-letter list.
func (c *Consumer) Run(ctx context.Context) error {
	failures := 0
	for {
		if ctx.Err() != nil {
			return nil
		}
		keys := c.channels()
		if len(keys) == 0 {
			if err := c.backoff.Wait(ctx, 1); err != nil {
				return nil
			}
			continue
		}

		res, err := c.rdb.BRPop(ctx, popTimeout, keys...).Result()
		switch {
		case errors.Is(err, redis.Nil):
			failures = 0
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			failures++
			c.log.Warn().Err(err).Int("failures", failures).Msg("redis pop failed")
			if err := c.backoff.Wait(ctx, failures); err != nil {
				return nil
			}
			continue
		}
		failures = 0
		if len(res) < 2 {
			continue
		}
		c.handle(ctx, res[0], []byte(res[1]))
	}
}

func (c *Consumer) handle(ctx context.Context, channel string, payload []byte) {
	c.mu.RLock()
	h, ok := c.handlers[channel]
	c.mu.RUnlock()
	if !ok {
		return
	}

	err := h(ctx, payload)
	if err == nil {
		return
	}
	c.log.Error().Err(err).Str("channel", channel).Msg("message handler failed, dead-lettering")
	if err := c.rdb.LPush(context.WithoutCancel(ctx), channel+deadLetterSuffix, payload).Err(); err != nil {
		c.log.Error().Err(err).Str("channel", channel).Msg("failed to dead-letter message")
	}
}

var (
	_ port.EventPublisher  = (*Publisher)(nil)
	_ port.EventSubscriber = (*Consumer)(nil)
)
