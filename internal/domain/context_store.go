package domain

import (
	"sync"
	"time"
)

// Result is the latest value a worker produced for its output key. A failed
// worker leaves Err set and Text empty.
type Result struct {
	Key       OutputKey
	AgentName string
	Text      string
	Err       string
	CreatedAt time.Time
}

// Failed reports whether this result records a worker failure.
func (r Result) Failed() bool {
	return r.Err != ""
}

// ContextStore is the per-session scratchpad of the latest named results.
// A write replaces the previous value for the key, never appends. Entries
// survive across turns so a later turn can reference earlier results.
type ContextStore struct {
	mu     sync.RWMutex
	values map[OutputKey]Result
}

func NewContextStore() *ContextStore {
	return &ContextStore{
		values: make(map[OutputKey]Result),
	}
}

func (s *ContextStore) Set(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[res.Key] = res
}

// SetAll commits a batch of results in one critical section. The barrier
// group uses this after the join so readers never observe a half-written
// turn.
func (s *ContextStore) SetAll(results []Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range results {
		s.values[res.Key] = res
	}
}

func (s *ContextStore) Get(key OutputKey) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.values[key]
	return res, ok
}

func (s *ContextStore) Keys() []OutputKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]OutputKey, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}
