package querylog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
)

// PostgresRecorder persists tool invocations using pgx.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS tool_invocations (
//	    id          UUID PRIMARY KEY,
//	    session_id  TEXT NOT NULL,
//	    place       TEXT NOT NULL,
//	    kind        TEXT NOT NULL,
//	    status      TEXT NOT NULL,
//	    latency_ms  BIGINT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder constructs the recorder.
func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

// Record implements chat.InvocationRecorder.
func (r *PostgresRecorder) Record(ctx context.Context, record chat.InvocationRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tool_invocations (id, session_id, place, kind, status, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, record.ID, record.SessionID, record.Place, record.Kind, record.Status, record.LatencyMS, record.CreatedAt)
	return err
}

// Recent returns up to limit newest entries, newest first.
func (r *PostgresRecorder) Recent(ctx context.Context, limit int) ([]chat.InvocationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, place, kind, status, latency_ms, created_at
		FROM tool_invocations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.InvocationRecord
	for rows.Next() {
		var record chat.InvocationRecord
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Place, &record.Kind, &record.Status, &record.LatencyMS, &record.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ chat.InvocationRecorder = (*PostgresRecorder)(nil)
