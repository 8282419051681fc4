package events

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// EventName matches the event the dashboard front-end listens for.
const EventName = "sidebar-items-updated"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMessage is the outgoing WebSocket message format.
type streamMessage struct {
	Type string `json:"type"`
}

// RegisterRoutes mounts the change notification stream.
func RegisterRoutes(r chi.Router, bus *Bus) {
	r.Get("/api/events", handleStream(bus))
}

// handleStream upgrades the connection and forwards one message per bus
// tick until the peer goes away.
func handleStream(bus *Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("events: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		sub := bus.Subscribe()
		defer sub.Unsubscribe()

		// Reads are discarded; their only purpose is detecting the close
		// of the peer so the subscription is released.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				if err := conn.WriteJSON(streamMessage{Type: EventName}); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Printf("events: websocket write: %v", err)
					}
					return
				}
			}
		}
	}
}
