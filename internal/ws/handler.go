package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"stockfeed/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub *Hub
}

func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := h.hub.Register(conn)

	go h.readPump(client)
	go h.writePump(client)
}

func (h *WebSocketHandler) readPump(client *models.Client) {
	defer client.Close()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("session", client.ID).Warnf("read error: %v", err)
			}
			break
		}

		var socketMsg models.SocketMessage
		if err := json.Unmarshal(message, &socketMsg); err != nil {
			h.sendControl(client, models.ErrorResponse{Error: "Invalid message format"})
			continue
		}

		switch socketMsg.Action {
		case "identify":
			if socketMsg.UserID == "" {
				h.sendControl(client, models.ErrorResponse{Error: "user_id required"})
				continue
			}
			topics := h.hub.Identify(client, socketMsg.UserID)
			h.sendControl(client, models.SubscriptionResponse{
				Status:  "success",
				Message: "Identified as " + socketMsg.UserID,
				Topics:  topics,
			})

		case "subscribe":
			if err := h.hub.Join(client, socketMsg.Ticker); err != nil {
				h.sendControl(client, models.ErrorResponse{Error: err.Error() + ": " + socketMsg.Ticker})
				continue
			}
			h.sendControl(client, models.SubscriptionResponse{
				Status:  "success",
				Message: "Subscribed to " + socketMsg.Ticker,
				Topics:  client.JoinedTopics(),
			})

		case "unsubscribe":
			if err := h.hub.Leave(client, socketMsg.Ticker); err != nil {
				h.sendControl(client, models.ErrorResponse{Error: err.Error() + ": " + socketMsg.Ticker})
				continue
			}
			h.sendControl(client, models.SubscriptionResponse{
				Status:  "success",
				Message: "Unsubscribed from " + socketMsg.Ticker,
				Topics:  client.JoinedTopics(),
			})

		default:
			h.sendControl(client, models.ErrorResponse{Error: "Unknown action"})
		}
	}
}

// sendControl queues an ack or error frame for the writePump. Control frames
// are dropped rather than blocking the read loop on a dead connection.
func (h *WebSocketHandler) sendControl(client *models.Client, v interface{}) {
	select {
	case client.Control <- v:
	default:
	}
}

// writePump is the sole writer on the connection, multiplexing price ticks,
// control frames and keepalive pings.
func (h *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case tick, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteJSON(models.NewPriceUpdate(tick)); err != nil {
				return
			}

		case frame := <-client.Control:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
