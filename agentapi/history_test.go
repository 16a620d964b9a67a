package agentapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "enabl-chat/errors"
)

func TestRecentChats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/recent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "user-1" {
			t.Errorf("userId = %q, want user-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"recent_chats": [
				{"session_id": "session-a", "preview": "How do I sleep better?", "agent_type": "health-assistant", "last_activity": "2026-08-28T10:00:00Z"}
			],
			"count": 1
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.RecentChats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecentChats failed: %v", err)
	}
	if result.Count != 1 || len(result.RecentChats) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.RecentChats[0].SessionID != "session-a" {
		t.Errorf("session id = %q", result.RecentChats[0].SessionID)
	}
}

func TestRecentChatsEmptyListNeverNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.RecentChats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecentChats failed: %v", err)
	}
	if result.RecentChats == nil {
		t.Error("recent chats slice should be empty, not nil")
	}
}

func TestConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/session-a" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"session_id": "session-a",
			"messages": [
				{"id": "m1", "role": "user", "content": "hello", "timestamp": "2026-08-28T10:00:00Z"},
				{"id": "m2", "role": "assistant", "content": "hi", "timestamp": "2026-08-28T10:00:05Z", "agent_type": "health-assistant"}
			],
			"count": 2
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Conversation(context.Background(), "session-a", "user-1")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if len(result.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(result.Messages))
	}
	if result.Messages[0].Role != "user" || result.Messages[1].AgentType != "health-assistant" {
		t.Errorf("messages = %+v", result.Messages)
	}
}

func TestConversationFillsSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages": [], "count": 0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Conversation(context.Background(), "session-x", "user-1")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if result.SessionID != "session-x" {
		t.Errorf("session id = %q, want the requested one echoed back", result.SessionID)
	}
	if result.Messages == nil {
		t.Error("messages slice should be empty, not nil")
	}
}

func TestHistoryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.RecentChats(context.Background(), "user-1"); !errors.Is(err, apperrors.ErrAgentUnavailable) {
		t.Errorf("RecentChats error = %v, want ErrAgentUnavailable", err)
	}
	if _, err := client.Conversation(context.Background(), "session-a", "user-1"); !errors.Is(err, apperrors.ErrAgentUnavailable) {
		t.Errorf("Conversation error = %v, want ErrAgentUnavailable", err)
	}
}
