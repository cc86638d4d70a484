package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// feedServer upgrades each connection and writes every message queued on
// send to it.
type feedServer struct {
	*httptest.Server
	send chan string
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{send: make(chan string, 16)}
	upgrader := websocket.Upgrader{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
		for {
			select {
			case msg := <-fs.send:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}))
	return fs
}

func (fs *feedServer) wsURL() string {
	return "ws" + strings.TrimPrefix(fs.URL, "http")
}

func TestSubscriber_DispatchesToRegisteredHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := newFeedServer(t)
	defer fs.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber(fs.wsURL(), zap.NewNop())
	got := make(chan string, 1)
	sub.On(EventAssetCreated, func(data json.RawMessage) {
		var rec struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(data, &rec))
		got <- rec.Name
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sub.Run(ctx)
	}()

	fs.send <- `{"event":"assetCreated","data":{"id":"a1","name":"Water pump"}}`

	select {
	case name := <-got:
		assert.Equal(t, "Water pump", name)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSubscriber_PanickingHandlerDoesNotKillFeed(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := newFeedServer(t)
	defer fs.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber(fs.wsURL(), zap.NewNop())
	sub.On(EventFeedstockUpdated, func(json.RawMessage) {
		panic("boom")
	})
	got := make(chan struct{}, 1)
	sub.On(EventFeedstockDeleted, func(json.RawMessage) {
		got <- struct{}{}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sub.Run(ctx)
	}()

	fs.send <- `{"event":"feedstockUpdated","data":{"id":"f1"}}`
	fs.send <- `{"event":"feedstockDeleted","data":{"id":"f1"}}`

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("feed stopped after handler panic")
	}

	cancel()
	<-done
}

func TestSubscriber_IgnoresMalformedAndUnknownEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := newFeedServer(t)
	defer fs.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber(fs.wsURL(), zap.NewNop())
	got := make(chan struct{}, 1)
	sub.On(EventAssetDeleted, func(data json.RawMessage) {
		id, err := DeletedID(data)
		require.NoError(t, err)
		assert.Equal(t, "a9", id)
		got <- struct{}{}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sub.Run(ctx)
	}()

	fs.send <- `not json at all`
	fs.send <- `{"event":"somethingElse","data":{}}`
	fs.send <- `{"event":"assetDeleted","data":{"id":"a9"}}`

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("valid event after garbage was not dispatched")
	}

	cancel()
	<-done
}

func TestSubscriber_ReconnectHookFiresAfterDroppedConnection(t *testing.T) {
	defer goleak.VerifyNone(t)

	// First connection is dropped right after the upgrade; the second
	// stays open until the subscriber's context ends.
	var mu sync.Mutex
	conns := 0
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mu.Lock()
		conns++
		first := conns == 1
		mu.Unlock()
		if first {
			conn.Close()
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber("ws"+strings.TrimPrefix(srv.URL, "http"), zap.NewNop())
	reconnected := make(chan struct{}, 1)
	sub.OnReconnect(func() { reconnected <- struct{}{} })

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sub.Run(ctx)
	}()

	select {
	case <-reconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("reconnect hook was not called")
	}

	cancel()
	<-done
}

func TestSubscriber_RunReturnsContextErrWhenServerUnreachable(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub := NewSubscriber("ws://127.0.0.1:1/feed", zap.NewNop())
	err := sub.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDeletedID(t *testing.T) {
	id, err := DeletedID(json.RawMessage(`{"id":"m3"}`))
	require.NoError(t, err)
	assert.Equal(t, "m3", id)

	_, err = DeletedID(json.RawMessage(`"m3"`))
	assert.Error(t, err)
}
