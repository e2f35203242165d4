package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/friendsofgo/errors"
	goredis "github.com/redis/go-redis/v9"

	"studio-notify/internal/event"
	"studio-notify/internal/wsserver"
	"studio-notify/pkg/log"
	"studio-notify/pkg/redis"
)

// Subscriber relays notification events published to a Redis channel into
// the hub. Dashboard services (orders, tasks, payments) publish frames to
// the channel; routing to individual users happens in the browser clients.
type Subscriber struct {
	client  *redis.Client
	hub     *wsserver.Hub
	logger  log.Logger
	channel string

	pubsub *goredis.PubSub

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	maxRetries int
	retryDelay time.Duration

	mu            sync.RWMutex
	lastMessageAt time.Time
	isActive      atomic.Bool
}

// NewSubscriber creates a new Redis subscriber for the given channel.
func NewSubscriber(client *redis.Client, hub *wsserver.Hub, channel string, logger log.Logger) *Subscriber {
	ctx, cancel := context.WithCancel(context.Background())

	return &Subscriber{
		client:     client,
		hub:        hub,
		logger:     logger,
		channel:    channel,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		maxRetries: 10,
		retryDelay: 5 * time.Second,
	}
}

// Start subscribes to the channel and begins relaying events.
func (s *Subscriber) Start() error {
	s.pubsub = s.client.Subscribe(s.ctx, s.channel)

	// Confirm the subscription before reporting success.
	if _, err := s.pubsub.Receive(s.ctx); err != nil {
		return errors.Wrapf(err, "subscribe to %s", s.channel)
	}

	s.isActive.Store(true)
	s.logger.Infof(s.ctx, "redis subscriber started on channel %s", s.channel)

	go s.listen()

	return nil
}

func (s *Subscriber) listen() {
	defer close(s.done)

	ch := s.pubsub.Channel()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info(context.Background(), "redis subscriber shutting down")
			return

		case msg, ok := <-ch:
			if !ok {
				s.logger.Error(s.ctx, "redis pub/sub channel closed, reconnecting")
				if err := s.reconnect(); err != nil {
					s.isActive.Store(false)
					s.logger.Errorf(s.ctx, "failed to reconnect to redis: %v", err)
					return
				}
				ch = s.pubsub.Channel()
				continue
			}

			s.handleMessage(msg.Payload)
		}
	}
}

func (s *Subscriber) handleMessage(payload string) {
	s.mu.Lock()
	s.lastMessageAt = time.Now()
	s.mu.Unlock()

	frame, err := event.ParseInbound([]byte(payload))
	if err != nil {
		s.logger.Warnf(s.ctx, "dropping malformed event: %v", err)
		return
	}

	s.hub.Publish(frame)
	s.logger.Debugf(s.ctx, "relayed %s event to hub", frame.Type)
}

func (s *Subscriber) reconnect() error {
	for i := 0; i < s.maxRetries; i++ {
		s.logger.Infof(s.ctx, "reconnecting to redis (attempt %d/%d)", i+1, s.maxRetries)

		if s.pubsub != nil {
			s.pubsub.Close()
		}
		s.pubsub = s.client.Subscribe(s.ctx, s.channel)

		if _, err := s.pubsub.Receive(s.ctx); err == nil {
			s.logger.Info(s.ctx, "reconnected to redis")
			return nil
		}

		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}

	return errors.Errorf("failed to reconnect to redis after %d attempts", s.maxRetries)
}

// HealthInfo returns the subscriber's current health.
func (s *Subscriber) HealthInfo() (active bool, lastMessageAt time.Time, channel string) {
	s.mu.RLock()
	lastMsg := s.lastMessageAt
	s.mu.RUnlock()

	return s.isActive.Load(), lastMsg, s.channel
}

// Shutdown gracefully stops the subscriber.
func (s *Subscriber) Shutdown(ctx context.Context) error {
	s.isActive.Store(false)
	s.cancel()

	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(context.Background(), "error closing pub/sub: %v", err)
		}
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
