package chathistory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

// ValkeyStore persists transcripts in a Valkey-compatible database so
// sessions survive instance restarts.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs the store.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "chat"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Load implements chat.HistoryStore.
func (s *ValkeyStore) Load(ctx context.Context, sessionID string) ([]chat.Message, error) {
	cmd := s.client.B().Get().Key(s.key(sessionID)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	var messages []chat.Message
	if err := json.Unmarshal([]byte(payload), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Save implements chat.HistoryStore.
func (s *ValkeyStore) Save(ctx context.Context, sessionID string, messages []chat.Message, ttl time.Duration) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(sessionID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(sessionID string) string {
	return s.prefix + ":history:" + sessionID
}

var _ chat.HistoryStore = (*ValkeyStore)(nil)
