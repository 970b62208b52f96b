// kmapin-logistics/internal/handlers/event_hub.go
// Лента событий бэк-офиса: записи журнала активности рассылаются
// всем подключённым по WebSocket пользователям.
package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Для разработки разрешаем все источники
	},
}

// GlobalHub - единственный экземпляр хаба для всего приложения
var GlobalHub = NewHub()

// EventMessage - конверт события, уходящего в WebSocket.
type EventMessage struct {
	Type    string             `json:"type"`
	Payload models.ActivityLog `json:"payload"`
}

type subscriber struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub ведёт список подключённых пользователей и рассылает им события.
type Hub struct {
	subscribers map[uint]*subscriber
	broadcast   chan []byte
	register    chan *subscriber
	unregister  chan *subscriber
	mu          sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:   make(chan []byte, 64),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		subscribers: make(map[uint]*subscriber),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.userID] = sub
			h.mu.Unlock()
			slog.Info("Event feed subscriber registered", "userID", sub.userID)

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub.userID]; ok {
				delete(h.subscribers, sub.userID)
				close(sub.send)
			}
			h.mu.Unlock()
			slog.Info("Event feed subscriber unregistered", "userID", sub.userID)

		case message := <-h.broadcast:
			h.sendToAll(message)
		}
	}
}

// Broadcast отправляет готовое событие всем подключённым пользователям.
// Не блокируется, если хаб ещё не запущен.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		slog.Warn("Event feed broadcast channel is full, event dropped")
	}
}

func (h *Hub) sendToAll(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, sub := range h.subscribers {
		select {
		case sub.send <- message:
		default:
			close(sub.send)
			delete(h.subscribers, userID)
		}
	}
}

func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()
	// Лента событий односторонняя: входящие сообщения игнорируем,
	// но читать соединение нужно, чтобы замечать его закрытие.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close error", "error", err)
			}
			break
		}
	}
}

func (s *subscriber) writePump() {
	defer func() {
		s.conn.Close()
	}()
	for message := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write message to websocket", "error", err)
			return
		}
	}
}

// EventsWSEndpoint поднимает WebSocket-соединение для ленты событий.
func EventsWSEndpoint(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	sub := &subscriber{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID.(uint),
	}
	sub.hub.register <- sub

	go sub.writePump()
	go sub.readPump()
}
