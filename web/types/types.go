package types

import (
	"enabl-chat/agentapi"
	"enabl-chat/chat"
)

// ChatRequest is the browser payload for sending one message.
type ChatRequest struct {
	Message    string `json:"message" form:"message"`
	SessionID  string `json:"sessionId" form:"sessionId"`
	AgentType  string `json:"agentType" form:"agentType"`
	DocumentID string `json:"documentId" form:"documentId"`
	FileCount  int    `json:"fileCount" form:"fileCount"`
}

// ChatReply is what POST /api/chat returns: the appended messages plus the
// routing metadata the UI shows as a badge.
type ChatReply struct {
	UserMessage      chat.ChatMessage         `json:"userMessage"`
	AssistantMessage chat.ChatMessage         `json:"assistantMessage"`
	SessionID        string                   `json:"sessionId"`
	RoutedTo         string                   `json:"routedTo,omitempty"`
	RoutingDecision  agentapi.RoutingDecision `json:"routingDecision,omitempty"`
}

// NewChatReply is the payload for POST /api/chat/new.
type NewChatReply struct {
	SessionID      string           `json:"sessionId"`
	WelcomeMessage chat.ChatMessage `json:"welcomeMessage"`
}

// ConversationReply is the hydrated conversation returned by
// GET /api/chats/:sessionID.
type ConversationReply struct {
	SessionID string             `json:"session_id"`
	Messages  []chat.ChatMessage `json:"messages"`
	Count     int                `json:"count"`
	AgentType string             `json:"agentType,omitempty"`
}

// RecentChatView is one sidebar entry: the backend summary plus
// display-ready preview and activity strings.
type RecentChatView struct {
	SessionID    string `json:"session_id"`
	Preview      string `json:"preview"`
	AgentType    string `json:"agent_type,omitempty"`
	LastActivity string `json:"last_activity"`
}

// RecentChatsReply is the payload for GET /api/chats/recent.
type RecentChatsReply struct {
	RecentChats []RecentChatView `json:"recent_chats"`
	Count       int              `json:"count"`
}

// UploadedFile describes a validated attachment held by the composer until
// it is sent with the next message or discarded.
type UploadedFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthConfig carries the identity-provider settings the browser needs to
// initialize its auth SDK. Consumed from configuration, never built here.
type AuthConfig struct {
	UserPoolID       string `json:"userPoolId"`
	UserPoolClientID string `json:"userPoolClientId"`
	Domain           string `json:"domain"`
	Region           string `json:"region"`
}
