package chathistory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	messages := []chat.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}

	require.NoError(t, store.Save(context.Background(), "s1", messages, 0))

	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, messages, loaded)

	// The store hands back copies, not its internal slice.
	loaded[0].Content = "mutated"
	again, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "hello", again[0].Content)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "s1", []chat.Message{{Role: "user", Content: "x"}}, time.Millisecond))

	time.Sleep(5 * time.Millisecond)

	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
