package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

// SendMessageRequest requires message to be present, but it may be empty.
type SendMessageRequest struct {
	UserID  string  `json:"userId" binding:"required"`
	Message *string `json:"message" binding:"required"`
	Persona string  `json:"persona"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid chat message data")
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), app.SendMessageInput{
		UserID:  req.UserID,
		Message: *req.Message,
		Persona: req.Persona,
	})
	if err != nil {
		writeServiceError(c, err, "invalid chat message data", "failed to process chat message")
		return
	}

	response.OK(c, result)
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chatService.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch chat messages")
		return
	}
	response.OK(c, messages)
}
