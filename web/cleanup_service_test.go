package web

import (
	"testing"
	"time"

	"enabl-chat/chat"

	"go.uber.org/zap"
)

func TestCleanupStaleSessions(t *testing.T) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	store := chat.NewStore()
	store.GetOrCreate("session-1")
	store.GetOrCreate("session-2")
	service := NewCleanupService(store, logger)

	if got := service.CleanupStaleSessions(time.Hour); got != 0 {
		t.Errorf("deleted %d sessions, want 0 within the retention age", got)
	}
	if store.Len() != 2 {
		t.Errorf("store length = %d, want 2", store.Len())
	}

	// A negative retention age puts the cutoff in the future, so every
	// session counts as stale.
	if got := service.CleanupStaleSessions(-time.Minute); got != 2 {
		t.Errorf("deleted %d sessions, want 2", got)
	}
	if store.Len() != 0 {
		t.Errorf("store length = %d, want 0 after sweep", store.Len())
	}
}
