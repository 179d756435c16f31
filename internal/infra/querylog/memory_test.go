package querylog

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

func TestMemoryRecorderRecentNewestFirst(t *testing.T) {
	recorder := NewMemoryRecorder()
	for i := 0; i < 5; i++ {
		require.NoError(t, recorder.Record(context.Background(), chat.InvocationRecord{ID: strconv.Itoa(i)}))
	}

	recent, err := recorder.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "4", recent[0].ID)
	require.Equal(t, "2", recent[2].ID)
}

func TestMemoryRecorderZeroLimitReturnsAll(t *testing.T) {
	recorder := NewMemoryRecorder()
	for i := 0; i < 3; i++ {
		require.NoError(t, recorder.Record(context.Background(), chat.InvocationRecord{ID: strconv.Itoa(i)}))
	}

	recent, err := recorder.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
}

func TestMemoryRecorderBoundedCapacity(t *testing.T) {
	recorder := NewMemoryRecorder()
	for i := 0; i < memoryCapacity+10; i++ {
		require.NoError(t, recorder.Record(context.Background(), chat.InvocationRecord{ID: strconv.Itoa(i)}))
	}

	recent, err := recorder.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, memoryCapacity)
	require.Equal(t, strconv.Itoa(memoryCapacity+9), recent[0].ID)
}
