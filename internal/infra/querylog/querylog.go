package querylog

import (
	"context"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

// Log is the combined write and read surface of the invocation audit log.
type Log interface {
	chat.InvocationRecorder
	Recent(ctx context.Context, limit int) ([]chat.InvocationRecord, error)
}
