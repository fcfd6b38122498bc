package storage

import "sync"

// MemoryStore is a process-lifetime RefinementStore. Entries are never evicted.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]string)}
}

func (s *MemoryStore) Get(key Key) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.entries[key]
	return text, ok
}

func (s *MemoryStore) Put(key Key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = text
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
