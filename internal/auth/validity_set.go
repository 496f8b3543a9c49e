package auth

import (
	"sync"
	"time"
)

// ValiditySet tracks which issued tokens are still honored.
// Implementations must be safe for concurrent use, and a Remove must be
// visible to every Contains that starts after it returns.
type ValiditySet interface {
	Add(token string, expiresAt time.Time)
	Remove(token string)
	Contains(token string) bool
	// RemoveExpired drops entries whose expiry is not after now and
	// reports how many were dropped.
	RemoveExpired(now time.Time) int
	Len() int
}

type memoryValiditySet struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewMemoryValiditySet returns a process-local ValiditySet.
func NewMemoryValiditySet() ValiditySet {
	return &memoryValiditySet{tokens: make(map[string]time.Time)}
}

func (s *memoryValiditySet) Add(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = expiresAt
}

func (s *memoryValiditySet) Remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *memoryValiditySet) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

func (s *memoryValiditySet) RemoveExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

func (s *memoryValiditySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
