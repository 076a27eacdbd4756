package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live connection. The joined-topic set is connection-scoped:
// it is seeded from the subscription registry when the connection identifies
// itself and then diverges through explicit join/leave until disconnect.
type Client struct {
	ID           string
	Conn         *websocket.Conn
	Send         chan *PriceTick
	Control      chan interface{}
	CloseHandler func()

	mu     sync.RWMutex
	userID string
	topics map[string]bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:      id,
		Conn:    conn,
		Send:    make(chan *PriceTick, 256),
		Control: make(chan interface{}, 16),
		topics:  make(map[string]bool),
	}
}

func (c *Client) SetUserID(id string) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) Join(ticker string) {
	c.mu.Lock()
	c.topics[ticker] = true
	c.mu.Unlock()
}

func (c *Client) Leave(ticker string) {
	c.mu.Lock()
	delete(c.topics, ticker)
	c.mu.Unlock()
}

func (c *Client) IsJoined(ticker string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topics[ticker]
}

func (c *Client) JoinedTopics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	topics := make([]string, 0, len(c.topics))
	for t := range c.topics {
		topics = append(topics, t)
	}
	return topics
}

func (c *Client) Close() {
	if c.CloseHandler != nil {
		c.CloseHandler()
	}
	if c.Conn != nil {
		c.Conn.Close()
	}
}

// SocketMessage is an inbound connection event: identify, subscribe
// or unsubscribe.
type SocketMessage struct {
	Action string `json:"action"`
	UserID string `json:"user_id,omitempty"`
	Ticker string `json:"ticker,omitempty"`
}

type SubscriptionResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Topics  []string `json:"topics,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
