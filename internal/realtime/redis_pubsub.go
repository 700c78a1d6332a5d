package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/domain"
)

const publishTimeout = 5 * time.Second

// RedisBroker implements Broker using Redis pub/sub, so changes made by the
// worker or another API instance reach every connected client.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

var _ Broker = (*RedisBroker)(nil)

// NewRedisBroker creates a Redis pub/sub bridge for trip events.
func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBroker{client: client, logger: logger}
}

// PublishTripEvent publishes ev to the owner's Redis channel.
func (b *RedisBroker) PublishTripEvent(ctx context.Context, ev domain.TripEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("realtime.RedisBroker.PublishTripEvent: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := b.client.Publish(ctx, ownerChannel(ev.OwnerID), body).Err(); err != nil {
		return fmt.Errorf("realtime.RedisBroker.PublishTripEvent: %w", err)
	}
	return nil
}

// Subscribe subscribes to the owner's channel. The subscription also ends
// when ctx is cancelled.
func (b *RedisBroker) Subscribe(ctx context.Context, ownerID string) (<-chan domain.TripEvent, func(), error) {
	ctx, cancelCtx := context.WithCancel(ctx)
	pubsub := b.client.Subscribe(ctx, ownerChannel(ownerID))
	if _, err := pubsub.Receive(ctx); err != nil {
		cancelCtx()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("realtime.RedisBroker.Subscribe: %w", err)
	}

	out := make(chan domain.TripEvent, subscriptionBuffer)
	msgs := pubsub.Channel()
	go func() {
		defer close(out)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.TripEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("discarding malformed trip event", zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				default:
				}
			}
		}
	}()

	var once sync.Once
	return out, func() { once.Do(cancelCtx) }, nil
}
