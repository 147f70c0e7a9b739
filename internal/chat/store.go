package chat

import "sync"

// Store is the append-only, in-memory conversation for the active
// session. Messages are never mutated or removed individually; the
// only destructive operation is a whole-store Clear. The store is the
// source of truth the feed projection derives from.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty conversation store
func NewStore() *Store {
	return &Store{}
}

// Append adds a message to the end of the conversation
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Snapshot returns a copy of the current conversation. Callers may
// hold it across projections without racing appends.
func (s *Store) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the conversation
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Clear resets the conversation to empty. Not undoable.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
