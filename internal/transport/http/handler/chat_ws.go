package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"intelimed/internal/app"
	"intelimed/internal/observability"
	"intelimed/internal/transport/http/response"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 25 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// ChatSocketHandler runs the chat flow over a websocket, one turn per
// inbound text frame.
type ChatSocketHandler struct {
	chatService *app.ChatService
	upgrader    websocket.Upgrader
}

type socketInbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Persona string `json:"persona"`
}

type socketOutbound struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func NewChatSocketHandler(chatService *app.ChatService) *ChatSocketHandler {
	return &ChatSocketHandler{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *ChatSocketHandler) Serve(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	log := observability.LoggerFromContext(c.Request.Context()).With("user_id", userID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	writes := make(chan socketOutbound, 8)
	go h.writeLoop(ctx, cancel, conn, writes)

	send(ctx, writes, socketOutbound{Type: "connected", Data: gin.H{"userId": userID}})

	for {
		var msg socketInbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if msg.Type != "" && msg.Type != "chat" {
			send(ctx, writes, socketOutbound{Type: "error", Error: "unsupported message type: " + msg.Type})
			continue
		}

		result, err := h.chatService.SendMessage(ctx, app.SendMessageInput{
			UserID:  userID,
			Message: msg.Message,
			Persona: msg.Persona,
		})
		if err != nil {
			log.Error("websocket chat turn failed", "error", err)
			send(ctx, writes, socketOutbound{Type: "error", Error: "failed to process chat message"})
			continue
		}
		send(ctx, writes, socketOutbound{Type: "reply", Data: result})
	}
}

func send(ctx context.Context, writes chan<- socketOutbound, out socketOutbound) {
	out.Timestamp = time.Now().UnixMilli()
	select {
	case writes <- out:
	case <-ctx.Done():
	}
}

// writeLoop owns all writes to conn; gorilla connections allow one writer.
func (h *ChatSocketHandler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, writes <-chan socketOutbound) {
	defer cancel()
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-writes:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}
