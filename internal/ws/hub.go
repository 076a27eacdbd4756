package ws

import (
	"sync"

	"stockfeed/internal/models"
	"stockfeed/internal/registry"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub owns the live sessions and the reverse index from ticker to the
// sessions currently joined to it. The registry stays the source of truth
// for what a user wants; a session's joined set is what this connection
// currently receives, reconciled only at identify time and by explicit
// join/leave. A registry toggle never updates any session by itself.
type Hub struct {
	registry *registry.Registry

	mu       sync.RWMutex
	sessions map[string]*models.Client
	topics   map[string]map[string]*models.Client
}

func NewHub(reg *registry.Registry) *Hub {
	topics := make(map[string]map[string]*models.Client)
	for _, t := range reg.Tickers() {
		topics[t] = make(map[string]*models.Client)
	}
	return &Hub{
		registry: reg,
		sessions: make(map[string]*models.Client),
		topics:   topics,
	}
}

// Register creates a session for a freshly accepted connection.
func (h *Hub) Register(conn *websocket.Conn) *models.Client {
	client := models.NewClient(uuid.New().String(), conn)
	client.CloseHandler = func() { h.Unregister(client) }

	h.mu.Lock()
	h.sessions[client.ID] = client
	total := len(h.sessions)
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session":  client.ID,
		"sessions": total,
	}).Info("session connected")
	return client
}

// Unregister removes the session from every topic and releases its outbox.
// Subscriptions in the registry are untouched; they outlive the connection.
func (h *Hub) Unregister(client *models.Client) {
	h.mu.Lock()
	if _, ok := h.sessions[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, client.ID)
	for _, t := range client.JoinedTopics() {
		delete(h.topics[t], client.ID)
	}
	total := len(h.sessions)
	h.mu.Unlock()

	close(client.Send)

	logrus.WithFields(logrus.Fields{
		"session":  client.ID,
		"sessions": total,
	}).Info("session closed")
}

// Identify binds the session to a user and unions the user's current
// registry snapshot into the joined set. Topics joined before identify are
// preserved; calling identify again re-unions against the snapshot taken at
// that instant.
func (h *Hub) Identify(client *models.Client, userID string) []string {
	snapshot := h.registry.Snapshot(userID)

	h.mu.Lock()
	if _, ok := h.sessions[client.ID]; !ok {
		h.mu.Unlock()
		return nil
	}
	client.SetUserID(userID)
	for _, t := range snapshot {
		client.Join(t)
		h.topics[t][client.ID] = client
	}
	h.mu.Unlock()

	return client.JoinedTopics()
}

// Join adds the session to a topic. Idempotent; legal before identify.
func (h *Hub) Join(client *models.Client, ticker string) error {
	if !h.registry.ValidTicker(ticker) {
		return registry.ErrUnknownTicker
	}

	h.mu.Lock()
	if _, ok := h.sessions[client.ID]; ok {
		client.Join(ticker)
		h.topics[ticker][client.ID] = client
	}
	h.mu.Unlock()
	return nil
}

// Leave removes the session from a topic. Leaving a topic the session never
// joined is a no-op.
func (h *Hub) Leave(client *models.Client, ticker string) error {
	if !h.registry.ValidTicker(ticker) {
		return registry.ErrUnknownTicker
	}

	h.mu.Lock()
	client.Leave(ticker)
	delete(h.topics[ticker], client.ID)
	h.mu.Unlock()
	return nil
}

// Broadcast delivers one tick to every session joined to its ticker. A
// session whose outbox is full is skipped for this tick; the next interval
// supersedes it. The producer is never blocked.
func (h *Hub) Broadcast(tick *models.PriceTick) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.topics[tick.Ticker] {
		select {
		case client.Send <- tick:
		default:
			logrus.WithFields(logrus.Fields{
				"session": client.ID,
				"ticker":  tick.Ticker,
			}).Debug("outbox full, tick skipped")
		}
	}
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Subscribers reports how many sessions are joined to a ticker.
func (h *Hub) Subscribers(ticker string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[ticker])
}
