package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an authenticated admin's connection and keeps it
// registered until the client goes away. Inbound messages are ignored.
func HandleWebSocket(c echo.Context, hub *Hub, adminID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{AdminID: adminID, Conn: conn}
	hub.register <- client

	err = client.send(Notification{
		Type:    NotificationTypeConnected,
		Message: "WebSocket connection established",
		AdminID: adminID,
	})
	if err != nil {
		hub.unregister <- client
		return nil
	}

	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
