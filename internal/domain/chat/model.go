package chat

import (
	"time"

	"github.com/Hitarth-ai/ZodiAI/pkg/metrics"
)

// Message is one transcript entry persisted between turns.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single conversation turn from the frontend. SessionID is
// filled in by the transport from the validated session token.
type Request struct {
	SessionID string `json:"-"`
	Message   string `json:"message"`
}

// Response carries the assistant reply for one turn.
type Response struct {
	Reply     string             `json:"reply"`
	Moderated bool               `json:"moderated,omitempty"`
	Usage     metrics.TokenUsage `json:"usage"`
}

// Session is an issued guest session.
type Session struct {
	ID        string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InvocationRecord is the audit entry written for every tool invocation.
type InvocationRecord struct {
	ID        string
	SessionID string
	Place     string
	Kind      string
	Status    string
	LatencyMS int64
	CreatedAt time.Time
}
