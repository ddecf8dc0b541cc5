package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"calcdex/battle"
	"calcdex/logging"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub broadcasts emitted update frames to every subscribed consumer. A write
// failure disconnects the consumer; there is no retry queue, the next full
// resubscribe resyncs them.
type Hub struct {
	publisher logging.Publisher

	mu          sync.Mutex
	nextID      uint64
	subscribers map[uint64]*subscriber
}

// NewHub creates an empty hub publishing diagnostics to the given publisher.
func NewHub(publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		publisher:   publisher,
		subscribers: make(map[uint64]*subscriber),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the read loop fails.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.publishSystem(logging.SeverityWarn, "upgrade failed", err.Error())
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = sub
	h.mu.Unlock()
	h.publishSystem(logging.SeverityInfo, "subscriber joined", "")

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Subscribers never send application frames; the read loop only services
	// control frames and detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(id)
}

// Broadcast sends one update frame to every subscriber. Empty updates are
// suppressed at the orchestrator, so every frame here carries patches.
func (h *Hub) Broadcast(update battle.Update) {
	data, err := json.Marshal(UpdateFrame{Type: FrameUpdate, Update: update})
	if err != nil {
		h.publishSystem(logging.SeverityError, "marshal update frame", err.Error())
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			h.publishSystem(logging.SeverityWarn, "subscriber write failed", err.Error())
			h.drop(id)
		}
	}
}

// Consumer adapts the hub into the orchestrator's consumer callback.
func (h *Hub) Consumer() battle.Consumer {
	return func(update battle.Update) {
		h.Broadcast(update)
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()
	for _, sub := range subs {
		sub.conn.Close()
	}
}

func (h *Hub) drop(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) publishSystem(severity logging.Severity, reason, detail string) {
	event := logging.Event{
		Type:     logging.EventBridge,
		Time:     time.Now(),
		Severity: severity,
		Reason:   reason,
	}
	if detail != "" {
		event.Extra = map[string]any{"detail": detail}
	}
	h.publisher.Publish(context.Background(), event)
}
