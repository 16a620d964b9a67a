package web

import (
	"context"
	"time"

	"enabl-chat/chat"
	"enabl-chat/config"

	"go.uber.org/zap"
)

// CleanupService removes conversations that have seen no activity for the
// configured retention age. Without it the in-memory store would grow with
// every session the process ever touched.
type CleanupService struct {
	store  *chat.Store
	logger *zap.Logger
}

// NewCleanupService creates a new cleanup service instance
func NewCleanupService(store *chat.Store, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		store:  store,
		logger: logger,
	}
}

// CleanupStaleSessions discards conversations idle longer than maxAge and
// returns how many were removed.
func (cs *CleanupService) CleanupStaleSessions(maxAge time.Duration) int {
	cutoffTime := time.Now().Add(-maxAge)

	deleted := cs.store.DeleteStale(cutoffTime)
	if deleted > 0 {
		cs.logger.Info("Stale session cleanup completed",
			zap.Int("sessions_deleted", deleted),
			zap.Int("sessions_remaining", cs.store.Len()),
			zap.Duration("max_age", maxAge))
	} else {
		cs.logger.Debug("No stale sessions found",
			zap.Time("cutoff_time", cutoffTime))
	}
	return deleted
}

// StartSessionCleanup runs the retention sweep on the configured interval
// until ctx is cancelled. Intended to run as a background goroutine.
func StartSessionCleanup(ctx context.Context, cfg *config.Config, cleanupService *CleanupService, logger *zap.Logger) {
	if !cfg.CleanupEnabled {
		logger.Info("Session cleanup disabled")
		return
	}

	logger.Info("Starting session cleanup routine",
		zap.Duration("interval", cfg.CleanupInterval),
		zap.Duration("retention_age", cfg.SessionRetentionAge))

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleanupService.CleanupStaleSessions(cfg.SessionRetentionAge)
		case <-ctx.Done():
			return
		}
	}
}
