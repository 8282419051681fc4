package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func dialStream(t *testing.T, bus *Bus) *websocket.Conn {
	t.Helper()

	r := chi.NewRouter()
	RegisterRoutes(r, bus)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing stream: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStreamForwardsBusTicks(t *testing.T) {
	bus := NewBus()
	conn := dialStream(t, bus)

	// The handler subscribes asynchronously; retry the publish until the
	// message arrives or the deadline passes.
	got := make(chan streamMessage, 1)
	go func() {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err == nil {
			got <- msg
		}
	}()

	deadline := time.After(2 * time.Second)
	for {
		bus.Publish()
		select {
		case msg := <-got:
			if msg.Type != EventName {
				t.Errorf("unexpected event type %q", msg.Type)
			}
			return
		case <-deadline:
			t.Fatal("no message received")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestStreamClientCloseReleasesSubscription(t *testing.T) {
	bus := NewBus()
	conn := dialStream(t, bus)
	conn.Close()

	// Publishing after the peer is gone must not panic or block.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		bus.Publish()
		time.Sleep(10 * time.Millisecond)
	}
}
