package services

import (
	"context"
	"fmt"
	"time"

	"enabl-chat/agentapi"
	"enabl-chat/agents"
	"enabl-chat/chat"
	"enabl-chat/web/format"
	"enabl-chat/web/types"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const previewMaxLength = 50

// HistoryFetcher is the transport the history service reads through.
type HistoryFetcher interface {
	RecentChats(ctx context.Context, userID string) (agentapi.RecentChatsResult, error)
	Conversation(ctx context.Context, sessionID, userID string) (agentapi.ConversationResult, error)
}

// HistoryService loads recent-chat summaries and hydrates past
// conversations. Every failure is fail-soft: guests and transport errors
// both yield empty results, never an error to the caller.
type HistoryService struct {
	fetcher HistoryFetcher
	store   *chat.Store
	refresh *chat.RefreshCounter
	cache   *lru.Cache
	logger  *zap.Logger
}

func NewHistoryService(
	fetcher HistoryFetcher,
	store *chat.Store,
	refresh *chat.RefreshCounter,
	cacheSize int,
	logger *zap.Logger,
) (*HistoryService, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create recent-chats cache: %w", err)
	}
	return &HistoryService{
		fetcher: fetcher,
		store:   store,
		refresh: refresh,
		cache:   cache,
		logger:  logger,
	}, nil
}

// ListRecent returns the sidebar summaries for userID. Guests always get
// an empty list without a network call; they have no persisted history.
// Results are cached per (user, refresh sequence), so a counter bump is
// the only thing that forces a re-fetch.
func (hs *HistoryService) ListRecent(ctx context.Context, userID string) types.RecentChatsReply {
	empty := types.RecentChatsReply{RecentChats: []types.RecentChatView{}, Count: 0}
	if chat.IsGuest(userID) {
		return empty
	}

	cacheKey := fmt.Sprintf("%s#%d", userID, hs.refresh.Current(userID))
	if cached, ok := hs.cache.Get(cacheKey); ok {
		if reply, ok := cached.(types.RecentChatsReply); ok {
			return reply
		}
	}

	result, err := hs.fetcher.RecentChats(ctx, userID)
	if err != nil {
		hs.logger.Error("Failed to fetch recent chats",
			zap.Error(err),
			zap.String("user_id", userID))
		return empty
	}

	now := time.Now()
	views := make([]types.RecentChatView, 0, len(result.RecentChats))
	for _, summary := range result.RecentChats {
		activity := summary.LastActivity
		if activity == "" {
			activity = summary.LastMessageTime
		}
		views = append(views, types.RecentChatView{
			SessionID:    summary.SessionID,
			Preview:      format.TruncatePreview(summary.Preview, previewMaxLength),
			AgentType:    summary.AgentType,
			LastActivity: format.RelativeActivity(activity, now),
		})
	}

	reply := types.RecentChatsReply{RecentChats: views, Count: len(views)}
	hs.cache.Add(cacheKey, reply)
	return reply
}

// LoadConversation fetches one past conversation and hydrates it into the
// session store, replacing any in-memory messages wholesale. Guests,
// unknown sessions, and transport failures all yield the empty result;
// hydration failures leave the prior state untouched.
func (hs *HistoryService) LoadConversation(ctx context.Context, sessionID, userID string) types.ConversationReply {
	empty := types.ConversationReply{SessionID: sessionID, Messages: []chat.ChatMessage{}, Count: 0}
	if sessionID == "" || chat.IsGuest(userID) {
		return empty
	}

	// Known sessions hydrate in place. Unknown ones stay out of the store
	// until the fetch succeeds, so a failed load for a bogus session id
	// leaves nothing behind.
	conv, tracked := hs.store.Get(sessionID)
	if !tracked {
		conv = chat.NewConversationWithSession(sessionID)
	}
	token := conv.BeginHydration()

	result, err := hs.fetcher.Conversation(ctx, sessionID, userID)
	if err != nil {
		conv.FailHydration(token)
		hs.logger.Error("Failed to load conversation",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("user_id", userID))
		return empty
	}

	messages := make([]chat.ChatMessage, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, hydrateMessage(m, result.SessionID))
	}

	if conv.CompleteHydration(token, result.SessionID, messages) {
		hs.store.Put(conv)
	} else {
		// A newer hydration started while this one was in flight; serve the
		// fetched data but leave the fresher state alone.
		hs.logger.Debug("Discarding stale hydration",
			zap.String("session_id", sessionID))
	}

	return types.ConversationReply{
		SessionID: result.SessionID,
		Messages:  messages,
		Count:     len(messages),
		AgentType: firstAgentType(messages),
	}
}

func hydrateMessage(m agentapi.ConversationMessage, sessionID string) chat.ChatMessage {
	msg := chat.ChatMessage{
		ID:        m.ID,
		Role:      chat.Role(m.Role),
		Content:   m.Content,
		Timestamp: parseMessageTime(m.Timestamp),
		SessionID: sessionID,
	}
	if m.AgentType != "" {
		msg.AgentType = agents.Parse(m.AgentType)
	}
	if msg.Role == chat.RoleAssistant {
		msg.Rendered = format.ConvertToHTML(m.Content)
	}
	return msg
}

func parseMessageTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstAgentType(messages []chat.ChatMessage) string {
	for _, m := range messages {
		if m.AgentType != "" && m.AgentType != agents.Auto {
			return string(m.AgentType)
		}
	}
	return ""
}
