package realtime

import (
	"context"
	"sync"

	"github.com/pkordes/tripjournal/internal/domain"
)

// LocalBroker delivers events within one process. It is used when no Redis
// is configured; changes made by other processes are not seen.
type LocalBroker struct {
	mu   sync.Mutex
	subs map[string]map[chan domain.TripEvent]struct{}
}

var _ Broker = (*LocalBroker)(nil)

// NewLocalBroker returns an empty in-process broker.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: make(map[string]map[chan domain.TripEvent]struct{})}
}

// PublishTripEvent hands ev to every current subscriber of the owner without blocking.
func (b *LocalBroker) PublishTripEvent(_ context.Context, ev domain.TripEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[ev.OwnerID] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber for ownerID until cancel is called or ctx ends.
func (b *LocalBroker) Subscribe(ctx context.Context, ownerID string) (<-chan domain.TripEvent, func(), error) {
	ch := make(chan domain.TripEvent, subscriptionBuffer)

	b.mu.Lock()
	if b.subs[ownerID] == nil {
		b.subs[ownerID] = make(map[chan domain.TripEvent]struct{})
	}
	b.subs[ownerID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[ownerID], ch)
			if len(b.subs[ownerID]) == 0 {
				delete(b.subs, ownerID)
			}
			close(ch)
			b.mu.Unlock()
		})
	}
	context.AfterFunc(ctx, cancel)
	return ch, cancel, nil
}
