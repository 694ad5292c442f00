package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// Register registers the live feed route
func (h *WebSocketHandler) Register(e *echo.Echo) {
	e.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket streams question events. The optional category query
// parameter limits the stream to one category.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	category := domain.AllCategories
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(err)
		}
		category = domain.CategoryID(id)
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		c.Logger().Warnf("websocket upgrade failed: %v", err)
		return nil
	}

	client := ws.NewClient(h.hub, conn, category)
	if !h.hub.Register(client) {
		conn.Close()
		return nil
	}

	// Start goroutines for reading and writing
	go client.ReadPump()
	go client.WritePump()

	return nil
}
