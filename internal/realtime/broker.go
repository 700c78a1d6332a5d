// Package realtime pushes an owner's trip list to open WebSocket connections
// whenever one of their trips changes. Changes travel between processes as
// domain.TripEvent values on a per-owner channel.
package realtime

import (
	"context"

	"github.com/pkordes/tripjournal/internal/domain"
)

// subscriptionBuffer is the number of undelivered events a subscriber may
// fall behind by before further events are dropped. Every event triggers a
// full re-list, so a dropped event is covered by any later one.
const subscriptionBuffer = 16

// Broker publishes trip events and delivers them to subscribers of the owner.
type Broker interface {
	PublishTripEvent(ctx context.Context, ev domain.TripEvent) error

	// Subscribe returns a channel of the owner's events and a function that
	// ends the subscription and closes the channel.
	Subscribe(ctx context.Context, ownerID string) (<-chan domain.TripEvent, func(), error)
}

func ownerChannel(ownerID string) string {
	return "trips:owner:" + ownerID
}
