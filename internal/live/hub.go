package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType identifies a live message.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageError    MessageType = "error"
	MessageEvent    MessageType = "event"
)

// Message is exchanged with browsers over the WebSocket.
type Message struct {
	Type    MessageType `json:"type"`
	Pass    uint64      `json:"pass,omitempty"`
	HTML    string      `json:"html,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Path    []int       `json:"path,omitempty"`
	Event   string      `json:"event,omitempty"`
	Payload any         `json:"payload,omitempty"`
}

const writeWait = 5 * time.Second

// Hub manages WebSocket connections for the preview.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	last     *Message

	onEvent func(Message)
	metrics *liveMetrics
	logger  *slog.Logger
}

// NewHub creates a hub. onEvent receives every event message a client sends.
func NewHub(onEvent func(Message), logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		onEvent: onEvent,
		logger:  logger,
	}
}

// HandleWebSocket upgrades the connection, sends the latest snapshot, and
// reads event messages until the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.metrics.wsError("upgrade")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	last := h.last
	h.mu.Unlock()
	h.metrics.clients(h.ClientCount())

	if last != nil {
		h.writeMu.Lock()
		err := h.write(conn, *last)
		h.writeMu.Unlock()
		if err != nil {
			h.drop(conn)
			return
		}
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.metrics.wsError("read")
				h.logger.Debug("websocket read failed", "error", err)
			}
			break
		}
		if msg.Type == MessageEvent && h.onEvent != nil {
			h.onEvent(msg)
		}
	}
	h.drop(conn)
}

// Broadcast sends msg to all clients. Snapshots are kept and replayed to
// clients that connect later.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	if msg.Type == MessageSnapshot {
		h.last = &msg
	}
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, client := range clients {
		if err := h.write(client, msg); err != nil {
			h.metrics.wsError("write")
			h.drop(client)
			continue
		}
		h.metrics.sent(msg.Type)
	}
}

func (h *Hub) write(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()
	conn.Close()
	h.metrics.clients(n)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	h.metrics.clients(0)
}
