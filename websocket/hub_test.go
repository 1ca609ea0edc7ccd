package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectDashboard(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		return HandleWebSocket(c, hub, "admin-1")
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Notification
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, NotificationTypeConnected, hello.Type)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_PublishReachesDashboard(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	conn := connectDashboard(t, hub)

	hub.Publish(NotificationTypeVouchersChanged, "Voucher created", map[string]string{"code": "SAVE10"})

	var got Notification
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, NotificationTypeVouchersChanged, got.Type)
	assert.Equal(t, "Voucher created", got.Message)
}

func TestHub_StalledDashboardIsDropped(t *testing.T) {
	saved := writeWait
	writeWait = 50 * time.Millisecond
	t.Cleanup(func() { writeWait = saved })

	hub := NewHub()
	go hub.Run()
	connectDashboard(t, hub)

	// The dashboard never reads, so the socket buffers fill up
	payload := strings.Repeat("x", 4<<20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20 && hub.ClientCount() > 0; i++ {
			hub.Broadcast(Notification{Type: NotificationTypeBannersChanged, Data: payload})
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("broadcast blocked on a stalled dashboard")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
