package chat

import (
	"sync"
	"time"

	"enabl-chat/agents"
)

// State is the lifecycle phase of a conversation.
type State int

const (
	// StateEmpty means no message has been exchanged yet.
	StateEmpty State = iota
	// StateActive means the session id is set and messages may be appended.
	StateActive
	// StateHydrating means a past conversation is being loaded; the current
	// message list remains visible until the fetch resolves.
	StateHydrating
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateHydrating:
		return "hydrating"
	}
	return "unknown"
}

// Conversation holds the ordered in-memory message list for one session.
// Appends are strictly ordered; hydration replaces the list wholesale.
// In-flight hydrations carry a monotonic token so a stale response can
// never overwrite newer state.
type Conversation struct {
	mu         sync.Mutex
	sessionID  string
	state      State
	agent      agents.Type
	messages   []ChatMessage
	hydrateSeq uint64
	lastActive time.Time
}

// NewConversation returns an empty conversation with no session id.
func NewConversation() *Conversation {
	return &Conversation{agent: agents.Auto, lastActive: time.Now()}
}

// NewConversationWithSession returns an active conversation bound to an
// existing session id, with no messages yet.
func NewConversationWithSession(sessionID string) *Conversation {
	return &Conversation{sessionID: sessionID, state: StateActive, agent: agents.Auto, lastActive: time.Now()}
}

// LastActive returns when the conversation last saw activity. The retention
// sweep uses it to find stale sessions.
func (c *Conversation) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// SessionID returns the current session identifier, empty until the first
// message or an explicit session adoption.
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// State returns the current lifecycle phase.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AgentType returns the category the conversation is currently routed to.
func (c *Conversation) AgentType() agents.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

// SetAgentType records an explicit agent selection for the conversation.
func (c *Conversation) SetAgentType(t agents.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agent = t
}

// AdoptSessionID replaces the session identifier, typically with one the
// backend assigned on the first exchange.
func (c *Conversation) AdoptSessionID(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
	c.lastActive = time.Now()
	if c.state == StateEmpty {
		c.state = StateActive
	}
}

// Append adds a message to the end of the conversation. There is no
// reordering and no content deduplication; only message ids are unique.
func (c *Conversation) Append(msg ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID == "" && msg.SessionID != "" {
		c.sessionID = msg.SessionID
	}
	c.messages = append(c.messages, msg)
	c.lastActive = time.Now()
	if c.state == StateEmpty {
		c.state = StateActive
	}
}

// Messages returns a copy of the ordered message list.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// BeginHydration marks the conversation as loading a past session and
// returns the token the eventual completion must present. Starting a newer
// hydration invalidates every earlier token.
func (c *Conversation) BeginHydration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hydrateSeq++
	c.state = StateHydrating
	return c.hydrateSeq
}

// CompleteHydration replaces the message list wholesale with the fetched
// conversation. The agent category is re-derived from the first message
// carrying a concrete one. Returns false when the token is stale, in which
// case nothing changes.
func (c *Conversation) CompleteHydration(token uint64, sessionID string, msgs []ChatMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.hydrateSeq {
		return false
	}
	c.lastActive = time.Now()
	c.sessionID = sessionID
	c.messages = make([]ChatMessage, len(msgs))
	copy(c.messages, msgs)
	c.agent = agents.Auto
	for _, m := range msgs {
		if m.AgentType != "" && m.AgentType != agents.Auto {
			c.agent = m.AgentType
			break
		}
	}
	c.state = StateActive
	return true
}

// FailHydration reverts the conversation to its prior phase. The message
// list is untouched; hydration failures are silent at this layer.
func (c *Conversation) FailHydration(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.hydrateSeq {
		return
	}
	if len(c.messages) == 0 && c.sessionID == "" {
		c.state = StateEmpty
	} else {
		c.state = StateActive
	}
}
