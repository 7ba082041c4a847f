package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/minjoonc/portfolio-backend/internal/models"
	"github.com/minjoonc/portfolio-backend/internal/repository"
	"github.com/minjoonc/portfolio-backend/internal/services"
	"github.com/minjoonc/portfolio-backend/internal/validation"
	"github.com/minjoonc/portfolio-backend/pkg/clientip"
)

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type    string `json:"type"` // "chat:send", "ping"
	Slug    string `json:"slug"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ChatHandler upgrades /ws/chat connections and bridges them to the hub.
// Each connection runs Connected → (zero or more send events) → Disconnected;
// there is no session resumption and no auth gate.
type ChatHandler struct {
	repo     *repository.FeedbackRepo
	hub      *services.ChatHub
	upgrader websocket.Upgrader
}

func NewChatHandler(repo *repository.FeedbackRepo, hub *services.ChatHub, allowedOrigins []string) *ChatHandler {
	return &ChatHandler{
		repo: repo,
		hub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowedOrigins)
			},
		},
	}
}

// originAllowed accepts requests with no Origin header (non-browser clients)
// and browser requests whose Origin is on the allowlist. "*" allows all.
func originAllowed(origin string, allowed []string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(strings.TrimSpace(a), origin) {
			return true
		}
	}
	return false
}

// ServeWS handles GET /ws/chat.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// The per-connection client identifier is captured once at upgrade time
	// and attached to every message this connection sends.
	cc := h.hub.Register(clientip.FromRequest(r), conn)
	defer h.hub.Unregister(cc.ID)

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case services.EventChatSend:
			h.handleSend(r.Context(), cc, msg)
		case "ping":
			_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		default:
			// Ignore unknown types
		}
	}
}

// handleSend validates, persists, and broadcasts one chat message. Failures
// are logged and swallowed: the sender gets no error feedback and no
// broadcast happens.
func (h *ChatHandler) handleSend(ctx context.Context, cc *services.ClientConn, msg ChatClientMessage) {
	result, err := validation.ValidateFeedback(validation.FeedbackRequest{
		Slug:    msg.Slug,
		Name:    msg.Name,
		Message: msg.Message,
	})
	if err != nil {
		log.Printf("dropping invalid chat message: %v", err)
		return
	}

	saved, err := h.repo.Insert(ctx, models.Feedback{
		Slug:     result.Slug,
		Name:     result.Name,
		Message:  result.Message,
		ClientID: cc.ClientID,
	})
	if err != nil {
		log.Printf("failed to persist chat message: %v", err)
		return
	}

	h.hub.Broadcast(services.ChatEvent{
		Type:    services.EventChatNewMessage,
		Message: saved,
	})
}
