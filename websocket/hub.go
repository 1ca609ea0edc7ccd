package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Define notification types
const (
	NotificationTypeConnected               = "connected"
	NotificationTypeWholesaleRequestUpdated = "wholesale_request_updated"
	NotificationTypeBannersChanged          = "banners_changed"
	NotificationTypeVouchersChanged         = "vouchers_changed"
	NotificationTypeGeneralDataChanged      = "general_data_changed"
	NotificationTypeSubscribersChanged      = "subscribers_changed"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	AdminID string      `json:"adminID,omitempty"`
}

// writeWait bounds a single write to a dashboard
var writeWait = 5 * time.Second

// Client is one open admin dashboard. Writes are serialized per connection.
type Client struct {
	AdminID string
	Conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *Client) send(notification Notification) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.Conn.WriteJSON(notification)
}

// Hub maintains the set of connected dashboards and broadcasts events
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Conn.Close()
	}
}

// ClientCount returns the number of connected dashboards
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a notification to every connected dashboard. A dashboard
// that cannot take the write within writeWait is disconnected.
func (h *Hub) Broadcast(notification Notification) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.send(notification); err != nil {
			logrus.WithFields(logrus.Fields{
				"adminID": client.AdminID,
				"type":    notification.Type,
			}).WithError(err).Warn("Failed to deliver websocket notification")
			h.drop(client)
		}
	}
}

// Publish broadcasts a typed event to every connected dashboard
func (h *Hub) Publish(eventType, message string, data interface{}) {
	h.Broadcast(Notification{Type: eventType, Message: message, Data: data})
}
