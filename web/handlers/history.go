package handlers

import (
	"net/http"

	"enabl-chat/web/middleware"
	"enabl-chat/web/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	historyService *services.HistoryService
	logger         *zap.Logger
}

func NewHistoryHandler(historyService *services.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// ListRecent handles GET /api/chats/recent. Guests get an empty list, and
// upstream failures degrade to an empty list as well; this endpoint never
// errors.
func (h *HistoryHandler) ListRecent(c *gin.Context) {
	userID := middleware.UserID(c)
	c.JSON(http.StatusOK, h.historyService.ListRecent(c.Request.Context(), userID))
}

// LoadConversation handles GET /api/chats/:sessionID. Unknown sessions and
// guests yield the empty conversation shape rather than a 404.
func (h *HistoryHandler) LoadConversation(c *gin.Context) {
	sessionID := c.Param("sessionID")
	userID := middleware.UserID(c)
	c.JSON(http.StatusOK, h.historyService.LoadConversation(c.Request.Context(), sessionID, userID))
}
