package chathistory

import (
	"context"
	"sync"
	"time"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

type entry struct {
	messages  []chat.Message
	expiresAt time.Time
}

// MemoryStore keeps transcripts in process memory for tests and single
// instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

// NewMemoryStore constructs the store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entry)}
}

// Load implements chat.HistoryStore.
func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	record, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	out := make([]chat.Message, len(record.messages))
	copy(out, record.messages)
	return out, nil
}

// Save implements chat.HistoryStore.
func (s *MemoryStore) Save(_ context.Context, sessionID string, messages []chat.Message, ttl time.Duration) error {
	stored := make([]chat.Message, len(messages))
	copy(stored, messages)
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.sessions[sessionID] = entry{messages: stored, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ chat.HistoryStore = (*MemoryStore)(nil)
