package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Outgoing messages buffered per client
	sendBuffer = 256
)

// Message represents a WebSocket message
type Message struct {
	Type    domain.QuestionEvent `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

type outbound struct {
	category domain.CategoryID
	data     []byte
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	ID       string
	Hub      *Hub
	Conn     *websocket.Conn
	Category domain.CategoryID // domain.AllCategories receives every event
	Send     chan []byte
}

// NewClient creates a client for conn that receives events of category
func NewClient(hub *Hub, conn *websocket.Conn, category domain.CategoryID) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Hub:      hub,
		Conn:     conn,
		Category: category,
		Send:     make(chan []byte, sendBuffer),
	}
}

func (c *Client) wants(category domain.CategoryID) bool {
	return c.Category == domain.AllCategories || c.Category == category
}

// Hub maintains the set of active clients and broadcasts question events.
// It implements domain.QuestionNotifier.
type Hub struct {
	// Registered clients, owned by Run
	clients map[*Client]bool

	// Outbound events
	broadcast chan outbound

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	logger echo.Logger

	mu    sync.RWMutex
	count int
}

// NewHub creates a new hub instance
func NewHub(logger echo.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan outbound, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run dispatches events until ctx is cancelled, then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			for client := range h.clients {
				if !client.wants(msg.category) {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					h.logger.Warnf("websocket client %s is too slow, disconnecting", client.ID)
					h.remove(client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		h.setCount(len(h.clients))
	}
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Register registers a new client with the hub. It reports false when the
// hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// NotifyQuestion queues a question event for every interested client. The
// event is dropped when the hub is backed up.
func (h *Hub) NotifyQuestion(event domain.QuestionEvent, question domain.Question) {
	payload, err := json.Marshal(question)
	if err != nil {
		h.logger.Errorf("Error marshaling question %d: %v", question.ID, err)
		return
	}

	data, err := json.Marshal(Message{Type: event, Payload: payload})
	if err != nil {
		h.logger.Errorf("Error marshaling message: %v", err)
		return
	}

	select {
	case h.broadcast <- outbound{category: question.Category, data: data}:
	default:
		h.logger.Warnf("dropping %s event for question %d", event, question.ID)
	}
}

// ReadPump keeps the connection alive and unregisters the client when it
// goes away. Messages from the peer are discarded.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warnf("websocket client %s: %v", c.ID, err)
			}
			return
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
