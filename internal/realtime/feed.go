package realtime

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/metrics"
	"github.com/pkordes/tripjournal/internal/middleware"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	listTimeout  = 10 * time.Second
)

// TripLister is the read the feed needs to build a snapshot.
type TripLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)
}

// Feed serves GET /trips/live. Each connection first receives the caller's
// full trip list, then the full list again after every change.
type Feed struct {
	trips    TripLister
	broker   Broker
	verifier auth.Verifier
	logger   *zap.Logger
	upgrader websocket.Upgrader

	// lists shares one ListByOwner between connections of the same owner
	// that refresh on the same event. A caller only joins a query that has
	// not started yet, so no caller is answered with rows read before it
	// subscribed or saw its event.
	lists   singleflight.Group
	mu      sync.Mutex
	pending map[string]uint64 // owner -> generation not yet started
	lastGen uint64
}

// NewFeed builds the feed handler. Browser connections are accepted only
// from allowedOrigins; requests without an Origin header are always accepted.
func NewFeed(trips TripLister, broker Broker, verifier auth.Verifier, allowedOrigins []string, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		trips:    trips,
		broker:   broker,
		verifier: verifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		pending: make(map[string]uint64),
	}
}

// ServeHTTP authenticates the caller, upgrades the connection and runs it
// until either side goes away. Browsers cannot set headers on a WebSocket
// handshake, so the token may also be passed as ?token=.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = auth.BearerToken(r.Header.Get("Authorization"))
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, domain.CodeMissingAuth, "token required")
		return
	}
	ownerID, err := f.verifier.Verify(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, domain.CodeInvalidToken, "Invalid or expired token")
		return
	}

	// The connection outlives the request context once hijacked.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	// Subscribe before the snapshot so no change slips in between.
	events, unsubscribe, err := f.broker.Subscribe(ctx, ownerID)
	if err != nil {
		f.logger.Error("live feed subscribe failed", zap.String("owner_id", ownerID), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, domain.CodeInternal, "live updates unavailable")
		return
	}
	defer unsubscribe()

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	metrics.LiveSubscribers.Inc()
	defer metrics.LiveSubscribers.Dec()

	c := &client{ownerID: ownerID, conn: conn, feed: f, logger: f.logger}
	go c.readPump(cancel)
	c.writePump(ctx, events)
}

// client is one live feed connection. writePump is its only writer.
type client struct {
	ownerID string
	conn    *websocket.Conn
	feed    *Feed
	logger  *zap.Logger
}

// readPump keeps the pong deadline fresh and reports when the peer leaves.
// Clients have nothing to say; any message they send is discarded.
func (c *client) readPump(done context.CancelFunc) {
	defer done()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (c *client) writePump(ctx context.Context, events <-chan domain.TripEvent) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	trips, err := c.list(ctx)
	if err != nil {
		c.logger.Warn("live feed snapshot failed", zap.String("owner_id", c.ownerID), zap.Error(err))
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot unavailable"))
		return
	}
	if c.write(domain.EventSnapshot, trips) != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			// One re-list covers every event already queued.
			ev = drain(events, ev)
			trips, err := c.list(ctx)
			if err != nil {
				// Keep the connection; the next change retries the list.
				c.logger.Warn("live feed list failed", zap.String("owner_id", c.ownerID), zap.Error(err))
				continue
			}
			if c.write(ev.Type, trips) != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) list(ctx context.Context) ([]domain.Trip, error) {
	return c.feed.listOwner(ctx, c.ownerID)
}

// listOwner loads the owner's trips. The shared query runs on its own
// timeout so one departing caller cannot cancel it for the others.
func (f *Feed) listOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	round := f.joinGeneration(ownerID)
	key := ownerID + "#" + strconv.FormatUint(round, 10)
	ch := f.lists.DoChan(key, func() (interface{}, error) {
		f.startGeneration(ownerID, round)
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		return f.trips.ListByOwner(ctx, ownerID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Trip), nil
	}
}

// joinGeneration returns the owner's pending generation, opening a new one
// when the previous query has already started.
func (f *Feed) joinGeneration(ownerID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if round, ok := f.pending[ownerID]; ok {
		return round
	}
	f.lastGen++
	f.pending[ownerID] = f.lastGen
	return f.lastGen
}

// startGeneration closes round to new callers once its query begins.
func (f *Feed) startGeneration(ownerID string, round uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending[ownerID] == round {
		delete(f.pending, ownerID)
	}
}

func (c *client) write(event string, trips []domain.Trip) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(gen.FeedMessage{Event: event, Trips: api.TripsFromDomain(trips)})
}

// drain returns the last of the events already buffered, or ev if none are.
func drain(events <-chan domain.TripEvent, ev domain.TripEvent) domain.TripEvent {
	for {
		select {
		case next, ok := <-events:
			if !ok {
				return ev
			}
			ev = next
		default:
			return ev
		}
	}
}

func writeError(w http.ResponseWriter, status int, code domain.Code, message string) {
	middleware.WriteError(w, status, gen.ErrorResponse{Error: string(code), Message: message})
}
