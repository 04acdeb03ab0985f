package services

import "sync"

// ResultVisibilityStore holds the per-game "show results" flag. The flag is
// advisory and not persisted; an unknown game reads as false.
type ResultVisibilityStore interface {
	Get(gameID int64) bool
	Set(gameID int64, show bool)
	Delete(gameID int64)
}

type memoryVisibilityStore struct {
	mu    sync.RWMutex
	flags map[int64]bool
}

// NewMemoryVisibilityStore returns a process-local store. Its contents are
// lost on restart and are not shared between replicas.
func NewMemoryVisibilityStore() ResultVisibilityStore {
	return &memoryVisibilityStore{flags: make(map[int64]bool)}
}

func (s *memoryVisibilityStore) Get(gameID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[gameID]
}

func (s *memoryVisibilityStore) Set(gameID int64, show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[gameID] = show
}

func (s *memoryVisibilityStore) Delete(gameID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, gameID)
}
