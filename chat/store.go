package chat

import (
	"sync"
	"time"
)

// Store keeps the active conversations keyed by session id. All state is
// in-memory; the remote backend owns persistence.
type Store struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

func NewStore() *Store {
	return &Store{convs: make(map[string]*Conversation)}
}

// Get returns the conversation for sessionID if present.
func (s *Store) Get(sessionID string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[sessionID]
	return conv, ok
}

// GetOrCreate returns the conversation for sessionID, creating an active
// one bound to that id when absent.
func (s *Store) GetOrCreate(sessionID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.convs[sessionID]; ok {
		return conv
	}
	conv := NewConversationWithSession(sessionID)
	s.convs[sessionID] = conv
	return conv
}

// Put registers a conversation under its current session id.
func (s *Store) Put(conv *Conversation) {
	id := conv.SessionID()
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[id] = conv
}

// Delete discards the conversation for sessionID.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, sessionID)
}

// Len returns the number of tracked conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}

// DeleteStale discards every conversation whose last activity is before
// cutoff and returns how many were removed.
func (s *Store) DeleteStale(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, conv := range s.convs {
		if conv.LastActive().Before(cutoff) {
			delete(s.convs, id)
			deleted++
		}
	}
	return deleted
}

// RefreshCounter tracks, per user, how many history-changing events have
// occurred. The recent-conversations loader re-fetches only when this
// sequence moves; it is the sole refresh trigger.
type RefreshCounter struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewRefreshCounter() *RefreshCounter {
	return &RefreshCounter{seqs: make(map[string]uint64)}
}

// Bump increments the sequence for userID. Callers skip guests; guest
// history is always empty so there is nothing to refresh.
func (r *RefreshCounter) Bump(userID string) {
	if userID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[userID]++
}

// Current returns the refresh sequence for userID.
func (r *RefreshCounter) Current(userID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seqs[userID]
}
