package handlers

import (
	"net/http"

	"enabl-chat/config"
	"enabl-chat/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConfigHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewConfigHandler(cfg *config.Config, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, logger: logger}
}

// AuthConfig handles GET /api/config/auth. It serves the identity-provider
// settings the browser's auth SDK needs, and refuses to serve a partial
// configuration.
func (h *ConfigHandler) AuthConfig(c *gin.Context) {
	if !h.cfg.AuthConfigComplete() {
		h.logger.Error("Auth configuration incomplete, refusing to serve it")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication is not configured"})
		return
	}

	c.JSON(http.StatusOK, types.AuthConfig{
		UserPoolID:       h.cfg.AuthUserPoolID,
		UserPoolClientID: h.cfg.AuthUserPoolClientID,
		Domain:           h.cfg.AuthDomain,
		Region:           h.cfg.AuthRegion,
	})
}
