package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockfeed/internal/models"
	"stockfeed/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewWebSocketHandler(hub).HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]interface{}
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestConnection_IdentifySubscribeUnsubscribe(t *testing.T) {
	reg := registry.New([]string{"GOOG", "TSLA"})
	reg.GetOrCreate("u1")
	_, _, err := reg.Toggle("u1", "GOOG")
	require.NoError(t, err)

	hub := NewHub(reg)
	conn := dialTestServer(t, hub)

	// Identify seeds the joined set from the registry.
	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "identify", UserID: "u1"}))
	ack := readFrame(t, conn)
	assert.Equal(t, "success", ack["status"])
	assert.Contains(t, ack["topics"], "GOOG")

	hub.Broadcast(&models.PriceTick{Ticker: "GOOG", Price: 101.23, Timestamp: 1})
	update := readFrame(t, conn)
	assert.Equal(t, "price_update", update["type"])
	assert.Equal(t, "GOOG", update["ticker"])
	assert.Equal(t, 101.23, update["price"])

	// Explicit join adds a topic the registry does not have.
	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "subscribe", Ticker: "TSLA"}))
	ack = readFrame(t, conn)
	assert.Equal(t, "success", ack["status"])

	hub.Broadcast(&models.PriceTick{Ticker: "TSLA", Price: 50.5, Timestamp: 2})
	update = readFrame(t, conn)
	assert.Equal(t, "TSLA", update["ticker"])

	// After leaving GOOG only TSLA ticks arrive.
	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "unsubscribe", Ticker: "GOOG"}))
	ack = readFrame(t, conn)
	assert.Equal(t, "success", ack["status"])

	hub.Broadcast(&models.PriceTick{Ticker: "GOOG", Price: 99.9, Timestamp: 3})
	hub.Broadcast(&models.PriceTick{Ticker: "TSLA", Price: 51.5, Timestamp: 4})
	update = readFrame(t, conn)
	assert.Equal(t, "TSLA", update["ticker"])
}

func TestConnection_InvalidMessages(t *testing.T) {
	reg := registry.New([]string{"GOOG"})
	hub := NewHub(reg)
	conn := dialTestServer(t, hub)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	frame := readFrame(t, conn)
	assert.Equal(t, "Invalid message format", frame["error"])

	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "subscribe", Ticker: "NFLX"}))
	frame = readFrame(t, conn)
	assert.Contains(t, frame["error"], "unknown ticker")

	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "dance"}))
	frame = readFrame(t, conn)
	assert.Equal(t, "Unknown action", frame["error"])
}

func TestConnection_DisconnectRemovesSession(t *testing.T) {
	reg := registry.New([]string{"GOOG"})
	hub := NewHub(reg)
	conn := dialTestServer(t, hub)

	require.NoError(t, conn.WriteJSON(models.SocketMessage{Action: "subscribe", Ticker: "GOOG"}))
	readFrame(t, conn)
	assert.Equal(t, 1, hub.Subscribers("GOOG"))

	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.SessionCount() == 0 && hub.Subscribers("GOOG") == 0
	}, 2*time.Second, 10*time.Millisecond)
}
