package stats

import (
	"sync"

	"github.com/spiffcs/refbot/internal/model"
)

// Key identifies a tracked counter in one channel.
type Key struct {
	Kind    model.MetricKind
	Channel string
}

// Store holds the last value observed for each (metric, channel) pair.
// It lives in memory only and is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[Key]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[Key]int),
	}
}

// Get returns the last value for key and whether one was recorded.
func (s *Store) Get(key Key) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set records value as the last observation for key.
func (s *Store) Set(key Key, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

// Forget removes the observation for key.
func (s *Store) Forget(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
}

// Reset removes every observation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[Key]int)
}

// Len returns the number of recorded observations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}
