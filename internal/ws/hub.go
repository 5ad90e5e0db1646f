package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is a change notification pushed to connected back-office clients.
// Delivery is tenant-scoped: only connections authenticated for the event's
// tenant receive it.
type Event struct {
	Type     string `json:"type"`
	TenantID int64  `json:"tenantId"`
	Key      string `json:"key,omitempty"`
	Actor    string `json:"actor,omitempty"`
}

// Conn is the subset of the websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one authenticated websocket connection.
type Client struct {
	conn     Conn
	tenantID int64
}

func NewClient(conn Conn, tenantID int64) *Client {
	return &Client{conn: conn, tenantID: tenantID}
}

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Event

	log   *zap.Logger
	mutex sync.Mutex
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event),
		log:        log,
	}
}

// Publish hands the event to the broadcast loop. It never blocks the
// caller's request path.
func (h *Hub) Publish(ev Event) {
	go func() { h.Broadcast <- ev }()
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			h.log.Debug("ws: client connected", zap.Int64("tenant", client.tenantID))

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.conn.Close()
			}
			h.mutex.Unlock()

		case ev := <-h.Broadcast:
			msg, err := json.Marshal(ev)
			if err != nil {
				h.log.Warn("ws: drop unmarshalable event", zap.Error(err))
				continue
			}
			h.mutex.Lock()
			for client := range h.Clients {
				if client.tenantID != ev.TenantID {
					continue
				}
				if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					client.conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}
