package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"enabl-chat/agentapi"
	"enabl-chat/chat"
	apperrors "enabl-chat/errors"

	"go.uber.org/zap"
)

// stubFetcher counts calls and returns canned history payloads.
type stubFetcher struct {
	recentCalls       int
	conversationCalls int
	recent            agentapi.RecentChatsResult
	conversation      agentapi.ConversationResult
	err               error
}

func (s *stubFetcher) RecentChats(ctx context.Context, userID string) (agentapi.RecentChatsResult, error) {
	s.recentCalls++
	return s.recent, s.err
}

func (s *stubFetcher) Conversation(ctx context.Context, sessionID, userID string) (agentapi.ConversationResult, error) {
	s.conversationCalls++
	return s.conversation, s.err
}

func newHistoryServiceForTest(t *testing.T, fetcher HistoryFetcher) (*HistoryService, *chat.Store, *chat.RefreshCounter) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	store := chat.NewStore()
	refresh := chat.NewRefreshCounter()
	service, err := NewHistoryService(fetcher, store, refresh, 16, logger)
	if err != nil {
		t.Fatalf("Failed to create history service: %v", err)
	}
	return service, store, refresh
}

func TestListRecentGuestNoNetworkCall(t *testing.T) {
	fetcher := &stubFetcher{}
	service, _, _ := newHistoryServiceForTest(t, fetcher)

	for _, userID := range []string{"", chat.GuestUserID} {
		reply := service.ListRecent(context.Background(), userID)
		if reply.Count != 0 || len(reply.RecentChats) != 0 {
			t.Errorf("guest %q should get an empty list, got %+v", userID, reply)
		}
	}
	if fetcher.recentCalls != 0 {
		t.Error("guests must never trigger a network call")
	}
}

func TestListRecentMapsSummaries(t *testing.T) {
	longPreview := strings.Repeat("a", 80)
	fetcher := &stubFetcher{recent: agentapi.RecentChatsResult{
		RecentChats: []agentapi.RecentChatSummary{
			{
				SessionID:    "session-a",
				Preview:      longPreview,
				AgentType:    "health-assistant",
				LastActivity: "not-a-timestamp",
			},
		},
		Count: 1,
	}}
	service, _, _ := newHistoryServiceForTest(t, fetcher)

	reply := service.ListRecent(context.Background(), "user-1")
	if reply.Count != 1 {
		t.Fatalf("count = %d, want 1", reply.Count)
	}
	view := reply.RecentChats[0]
	if len([]rune(view.Preview)) != 53 || !strings.HasSuffix(view.Preview, "...") {
		t.Errorf("preview = %q, want 50 runes plus ellipsis", view.Preview)
	}
	if view.LastActivity != "Recently" {
		t.Errorf("last activity = %q, want the Recently fallback for an unparseable timestamp", view.LastActivity)
	}
}

func TestListRecentCachedUntilRefreshBump(t *testing.T) {
	fetcher := &stubFetcher{recent: agentapi.RecentChatsResult{
		RecentChats: []agentapi.RecentChatSummary{{SessionID: "session-a", Preview: "hi"}},
		Count:       1,
	}}
	service, _, refresh := newHistoryServiceForTest(t, fetcher)

	service.ListRecent(context.Background(), "user-1")
	service.ListRecent(context.Background(), "user-1")
	if fetcher.recentCalls != 1 {
		t.Fatalf("fetch calls = %d, want 1 (second read served from cache)", fetcher.recentCalls)
	}

	refresh.Bump("user-1")
	service.ListRecent(context.Background(), "user-1")
	if fetcher.recentCalls != 2 {
		t.Errorf("fetch calls = %d, want 2 after a refresh bump", fetcher.recentCalls)
	}
}

func TestListRecentFailSoft(t *testing.T) {
	fetcher := &stubFetcher{err: apperrors.ErrAgentUnavailable}
	service, _, _ := newHistoryServiceForTest(t, fetcher)

	reply := service.ListRecent(context.Background(), "user-1")
	if reply.Count != 0 || len(reply.RecentChats) != 0 {
		t.Errorf("transport failure should yield an empty list, got %+v", reply)
	}
}

func TestLoadConversationGuestShortCircuit(t *testing.T) {
	fetcher := &stubFetcher{}
	service, _, _ := newHistoryServiceForTest(t, fetcher)

	reply := service.LoadConversation(context.Background(), "sess-1", chat.GuestUserID)
	if reply.SessionID != "sess-1" || reply.Count != 0 || len(reply.Messages) != 0 {
		t.Errorf("guest load = %+v, want empty reply echoing the session id", reply)
	}

	reply = service.LoadConversation(context.Background(), "", "user-1")
	if reply.Count != 0 {
		t.Errorf("empty session id load = %+v, want empty reply", reply)
	}

	if fetcher.conversationCalls != 0 {
		t.Error("guest and empty-session loads must not reach the network")
	}
}

func TestLoadConversationHydratesStore(t *testing.T) {
	fetcher := &stubFetcher{conversation: agentapi.ConversationResult{
		SessionID: "session-a",
		Messages: []agentapi.ConversationMessage{
			{ID: "m1", Role: "user", Content: "hello", Timestamp: "2026-08-28T10:00:00Z"},
			{ID: "m2", Role: "assistant", Content: "**hi**", Timestamp: "2026-08-28T10:00:05Z", AgentType: "community-agent"},
		},
		Count: 2,
	}}
	service, store, _ := newHistoryServiceForTest(t, fetcher)

	reply := service.LoadConversation(context.Background(), "session-a", "user-1")
	if reply.Count != 2 {
		t.Fatalf("reply count = %d, want 2", reply.Count)
	}
	if reply.AgentType != "community-agent" {
		t.Errorf("agent type = %q, want the first concrete one", reply.AgentType)
	}
	if reply.Messages[1].Rendered == "" {
		t.Error("assistant messages should be rendered on hydration")
	}
	if reply.Messages[0].Rendered != "" {
		t.Error("user messages must not be rendered")
	}
	if reply.Messages[0].Timestamp.IsZero() {
		t.Error("timestamps should be parsed")
	}

	conv, ok := store.Get("session-a")
	if !ok {
		t.Fatal("conversation missing from store after hydration")
	}
	if conv.Len() != 2 || conv.State() != chat.StateActive {
		t.Errorf("store state: len=%d state=%v", conv.Len(), conv.State())
	}
}

func TestLoadConversationFailureNotRegistered(t *testing.T) {
	fetcher := &stubFetcher{err: apperrors.ErrAgentUnavailable}
	service, store, _ := newHistoryServiceForTest(t, fetcher)

	for i := 0; i < 100; i++ {
		service.LoadConversation(context.Background(), fmt.Sprintf("bogus-%d", i), "user-1")
	}

	if store.Len() != 0 {
		t.Errorf("store length = %d; failed loads of unknown sessions must not register conversations", store.Len())
	}
}

func TestLoadConversationSuccessRegisters(t *testing.T) {
	fetcher := &stubFetcher{conversation: agentapi.ConversationResult{
		SessionID: "session-a",
		Messages: []agentapi.ConversationMessage{
			{ID: "m1", Role: "user", Content: "hello", Timestamp: "2026-08-28T10:00:00Z"},
		},
		Count: 1,
	}}
	service, store, _ := newHistoryServiceForTest(t, fetcher)

	service.LoadConversation(context.Background(), "session-a", "user-1")

	if _, ok := store.Get("session-a"); !ok {
		t.Error("successful hydration should register the conversation")
	}
	if store.Len() != 1 {
		t.Errorf("store length = %d, want 1", store.Len())
	}
}

func TestLoadConversationFailSoft(t *testing.T) {
	fetcher := &stubFetcher{err: apperrors.ErrAgentUnavailable}
	service, store, _ := newHistoryServiceForTest(t, fetcher)

	existing := store.GetOrCreate("session-a")
	existing.Append(chat.NewUserMessage("kept", "session-a"))

	reply := service.LoadConversation(context.Background(), "session-a", "user-1")
	if reply.Count != 0 {
		t.Errorf("transport failure should yield the empty reply, got %+v", reply)
	}
	if existing.Len() != 1 {
		t.Error("failed hydration must leave prior messages untouched")
	}
	if existing.State() != chat.StateActive {
		t.Errorf("state = %v, want active after failed hydration", existing.State())
	}
}
