package web

import (
	"context"
	"net/http"
	"time"

	"enabl-chat/config"
	"enabl-chat/web/handlers"
	"enabl-chat/web/middleware"
	"enabl-chat/web/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
	config *config.Config
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	chatService *services.ChatService,
	historyService *services.HistoryService,
	uploadService *services.UploadService,
	limiter *middleware.UserRateLimiter,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.IdentityMiddleware(cfg.JWTSecret, logger))

	server := &Server{
		router: router,
		logger: logger,
		config: cfg,
	}

	chatHandler := handlers.NewChatHandler(chatService, logger)
	historyHandler := handlers.NewHistoryHandler(historyService, logger)
	uploadHandler := handlers.NewUploadHandler(uploadService, logger)
	configHandler := handlers.NewConfigHandler(cfg, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/chat", middleware.MessageLimitMiddleware(limiter), chatHandler.SendMessage)
		api.POST("/chat/new", chatHandler.NewChat)
		api.GET("/chats/recent", historyHandler.ListRecent)
		api.GET("/chats/:sessionID", historyHandler.LoadConversation)
		api.POST("/uploads", middleware.UploadLimitMiddleware(limiter), uploadHandler.Upload)
		api.GET("/config/auth", configHandler.AuthConfig)
	}

	return server
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
