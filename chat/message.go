package chat

import (
	"fmt"
	"math/rand"
	"time"

	"enabl-chat/agents"
	"enabl-chat/utils"
)

// Role identifies the author of a message. It is fixed at creation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single message in a conversation. SessionID is a
// back-reference to the owning session, not ownership.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      Role        `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	AgentType agents.Type `json:"agentType,omitempty"`
	Citations []string    `json:"citations,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`

	// Rendered holds the HTML form of assistant content for display.
	// Never set on user messages.
	Rendered string `json:"rendered,omitempty"`
}

// NewUserMessage builds a user message stamped with the current time.
func NewUserMessage(content, sessionID string) ChatMessage {
	return ChatMessage{
		ID:        utils.GenerateMessageID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		SessionID: sessionID,
	}
}

// NewAssistantMessage builds an assistant message stamped with the current time.
func NewAssistantMessage(content, sessionID string, agent agents.Type, citations []string) ChatMessage {
	return ChatMessage{
		ID:        utils.GenerateMessageID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		AgentType: agent,
		Citations: citations,
		SessionID: sessionID,
	}
}

const sessionSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionID mints a session identifier from the current time plus a
// random suffix. Uniqueness is practical within a client session, not
// cryptographic.
func NewSessionID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = sessionSuffixAlphabet[rand.Intn(len(sessionSuffixAlphabet))]
	}
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), suffix)
}
