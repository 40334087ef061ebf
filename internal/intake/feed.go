package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; subscribers only send control frames
	maxMessageSize = 512

	// Events buffered per subscriber before it is dropped as too slow
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// the feed is read-only and carries no credentials
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedEvent is pushed to every subscriber when a brief is accepted.
type FeedEvent struct {
	ID         string             `json:"id"`
	ReceivedAt time.Time          `json:"received_at"`
	Brief      questionnaire.Form `json:"brief"`
}

type subscriber struct {
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

// Hub fans accepted briefs out to websocket subscribers.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	closed      bool
	wg          sync.WaitGroup
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]struct{})}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcast queues an event for every subscriber. Subscribers whose buffer
// is full are disconnected.
func (h *Hub) Broadcast(ev FeedEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logging.Error("Failed to encode feed event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			logging.Warn("Dropping slow feed subscriber", zap.String("remote_addr", sub.remote))
			h.removeLocked(sub)
		}
	}
	logging.LogFeedEvent("", "broadcast", len(h.subscribers))
}

// Serve registers conn as a subscriber and blocks until it disconnects or
// the hub is closed.
func (h *Hub) Serve(conn *websocket.Conn, remote string) {
	sub := &subscriber{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		remote: remote,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.wg.Add(1)
	h.mu.Unlock()

	logging.LogFeedEvent(remote, "subscribed", count)

	go func() {
		defer h.wg.Done()
		h.writePump(sub)
	}()
	h.readPump(sub)

	h.mu.Lock()
	h.removeLocked(sub)
	count = len(h.subscribers)
	h.mu.Unlock()

	logging.LogFeedEvent(remote, "unsubscribed", count)
}

// removeLocked closes the subscriber's send channel exactly once.
// h.mu must be held.
func (h *Hub) removeLocked(sub *subscriber) {
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
}

// readPump discards incoming messages and keeps the read deadline fresh on
// pongs. It returns when the connection fails or is closed.
func (h *Hub) readPump(sub *subscriber) {
	sub.conn.SetReadLimit(maxMessageSize)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := sub.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("Feed subscriber read error",
					zap.String("remote_addr", sub.remote),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(sub.remote, "received", msgType, data)
	}
}

// writePump sends queued events and periodic pings. It owns all writes to
// the connection and closes it on exit.
func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			logging.LogWebSocketMessage(sub.remote, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every subscriber and waits for their writers to exit,
// or for ctx to expire.
func (h *Hub) Close(ctx context.Context) {
	h.mu.Lock()
	h.closed = true
	for sub := range h.subscribers {
		h.removeLocked(sub)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn("Feed subscribers did not close in time")
	}
}
