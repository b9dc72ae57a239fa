// Package handoff holds the transcript hand-over slot between the
// capture flow and the review flow: one string per session, explicitly
// session-scoped rather than ambient global state.
package handoff

import (
	"context"
	"sync"
)

// Store is the single-writer/single-reader transcript slot. Set is called
// once per session after a successful transcription; Get is called by the
// review flow; Del when the session is discarded.
type Store interface {
	Set(ctx context.Context, sessionID, transcript string) error
	Get(ctx context.Context, sessionID string) (transcript string, ok bool, err error)
	Del(ctx context.Context, sessionID string) error
}

// MemoryStore keeps slots in-process. Suitable for a single CLI run and
// for tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, transcript string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sessionID] = transcript
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.slots[sessionID]
	return t, ok, nil
}

func (s *MemoryStore) Del(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, sessionID)
	return nil
}
