// Package realtime subscribes to the backend's websocket feed and fans
// incoming events out to registered handlers. The feed is best-effort:
// a dropped connection is retried with capped backoff, and anything
// missed in between is reconciled by the next full list load.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event names pushed by the backend.
const (
	EventAssetCreated             = "assetCreated"
	EventAssetUpdated             = "assetUpdated"
	EventAssetDeleted             = "assetDeleted"
	EventFeedstockUpdated         = "feedstockUpdated"
	EventFeedstockDeleted         = "feedstockDeleted"
	EventParentFishFeedingUpdated = "parentFishFeedingUpdated"
	EventParentFishFeedingDeleted = "parentFishFeedingDeleted"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// envelope is the wire shape of every pushed event.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler receives the payload of one event. Handlers run on the read
// goroutine; a panicking or slow handler must not take the feed down,
// so dispatch recovers and logs.
type Handler func(data json.RawMessage)

// Subscriber maintains one websocket connection to the event feed.
type Subscriber struct {
	url    string
	log    *zap.Logger
	dialer *websocket.Dialer

	mu        sync.RWMutex
	handlers  map[string][]Handler
	reconnect []func()
}

// NewSubscriber prepares a subscriber for the given ws:// URL. Run must
// be called to connect.
func NewSubscriber(url string, log *zap.Logger) *Subscriber {
	return &Subscriber{
		url:      url,
		log:      log,
		dialer:   websocket.DefaultDialer,
		handlers: make(map[string][]Handler),
	}
}

// On registers a handler for one event name. Safe to call before or
// after Run.
func (s *Subscriber) On(event string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], h)
}

// OnReconnect registers fn to run each time the feed re-establishes a
// dropped connection. Events pushed during the gap are gone, so the
// hook is where callers trigger a full refetch. Safe to call before Run.
func (s *Subscriber) OnReconnect(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnect = append(s.reconnect, fn)
}

// Run connects and pumps events until ctx is cancelled. Connection
// failures are retried with exponential backoff; a successful connect
// resets the backoff. Always returns ctx.Err().
func (s *Subscriber) Run(ctx context.Context) error {
	backoff := initialBackoff
	connectedOnce := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.log.Warn("event feed dial failed",
				zap.String("url", s.url),
				zap.Duration("retryIn", backoff),
				zap.Error(err))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		s.log.Info("event feed connected", zap.String("url", s.url))
		if connectedOnce {
			s.notifyReconnect()
		}
		connectedOnce = true
		backoff = initialBackoff
		s.readLoop(ctx, conn)
	}
}

func (s *Subscriber) notifyReconnect() {
	s.mu.RLock()
	hooks := s.reconnect
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// readLoop pumps one connection until it breaks or ctx is cancelled.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warn("event feed closed", zap.Error(err))
			}
			return
		}
		var env envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			s.log.Warn("malformed event payload", zap.Error(err))
			continue
		}
		s.dispatch(env)
	}
}

func (s *Subscriber) dispatch(env envelope) {
	s.mu.RLock()
	handlers := s.handlers[env.Event]
	s.mu.RUnlock()
	if len(handlers) == 0 {
		s.log.Debug("unhandled event", zap.String("event", env.Event))
		return
	}
	for _, h := range handlers {
		s.call(env, h)
	}
}

// call runs one handler, containing panics so a bad handler cannot kill
// the read loop.
func (s *Subscriber) call(env envelope, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("event handler panicked",
				zap.String("event", env.Event),
				zap.Any("panic", r))
		}
	}()
	h(env.Data)
}

// DeletedID extracts the record ID from a *Deleted event payload, which
// carries only {"id": "..."} rather than the full record.
func DeletedID(data json.RawMessage) (string, error) {
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// sleep waits for d or until ctx is done; reports whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
