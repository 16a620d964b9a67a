package handlers

import (
	"net/http"

	"enabl-chat/web/middleware"
	"enabl-chat/web/services"
	"enabl-chat/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *services.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage handles POST /api/chat.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("Failed to bind chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID := middleware.UserID(c)
	reply, err := h.chatService.SendMessage(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// NewChat handles POST /api/chat/new.
func (h *ChatHandler) NewChat(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" form:"sessionId"`
	}
	// Body is optional; an absent previous session is fine.
	_ = c.ShouldBind(&req)

	userID := middleware.UserID(c)
	reply := h.chatService.NewChat(userID, middleware.UserName(c), req.SessionID)

	c.JSON(http.StatusOK, reply)
}
