package querylog

import (
	"context"
	"sync"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

const memoryCapacity = 512

// MemoryRecorder keeps recent invocations in a bounded in-process ring.
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []chat.InvocationRecord
}

// NewMemoryRecorder constructs the recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record implements chat.InvocationRecorder.
func (r *MemoryRecorder) Record(_ context.Context, record chat.InvocationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, record)
	if len(r.entries) > memoryCapacity {
		r.entries = r.entries[len(r.entries)-memoryCapacity:]
	}
	return nil
}

// Recent returns up to limit newest entries, newest first.
func (r *MemoryRecorder) Recent(_ context.Context, limit int) ([]chat.InvocationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]chat.InvocationRecord, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

var _ chat.InvocationRecorder = (*MemoryRecorder)(nil)
