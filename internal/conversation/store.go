package conversation

import "sync"

// Store keeps one state value per chat. Chats that were never seen read as
// the initial state. Entries are never evicted.
type Store[S any] struct {
	mu      sync.RWMutex
	initial S
	states  map[int64]S
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{initial: initial, states: make(map[int64]S)}
}

func (s *Store[S]) Get(chatID int64) S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[chatID]; ok {
		return st
	}
	return s.initial
}

func (s *Store[S]) Set(chatID int64, st S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = st
}

// Reset puts the chat back into the initial state.
func (s *Store[S]) Reset(chatID int64) { s.Set(chatID, s.initial) }

func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
