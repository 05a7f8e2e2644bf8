package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used in tests and single-node dev
// setups. States are deep-copied on the way in and out so callers cannot
// alias each other's drafts.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Load(_ context.Context, username string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[username]
	if !ok {
		return NewState(), nil
	}
	return copyState(state)
}

func (s *MemoryStore) Save(_ context.Context, username string, state State) error {
	copied, err := copyState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[username] = copied
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, username)
	return nil
}

func copyState(state State) (State, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return State{}, fmt.Errorf("failed to copy session state: %w", err)
	}
	var copied State
	if err := json.Unmarshal(raw, &copied); err != nil {
		return State{}, fmt.Errorf("failed to copy session state: %w", err)
	}
	return copied, nil
}
