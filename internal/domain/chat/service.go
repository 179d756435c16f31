package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/llm/chatgpt"
	apperrors "github.com/Hitarth-ai/ZodiAI/pkg/errors"
	"github.com/Hitarth-ai/ZodiAI/pkg/metrics"
	"github.com/Hitarth-ai/ZodiAI/pkg/util"
)

const (
	toolChartDetails    = "get_birth_chart_details"
	toolDailyPrediction = "get_daily_prediction"

	// One tool round per turn is enough for this domain; anything beyond
	// that indicates the model is looping.
	maxToolRounds = 2

	moderationRefusal = "I'm here to talk about astrology and your birth chart. Let's keep the conversation respectful, what would you like to know about the stars?"
)

// Service runs one conversation turn end to end.
type Service interface {
	Converse(ctx context.Context, req Request) (Response, error)
}

// ChatClient is the LLM completion surface the loop depends on.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ModerationGate screens the user's latest message before any tool may run.
type ModerationGate interface {
	CreateModeration(ctx context.Context, req chatgpt.ModerationRequest) (chatgpt.ModerationResponse, error)
}

// ToolInvoker is the never-fails pipeline entry point.
type ToolInvoker interface {
	Invoke(ctx context.Context, query horoscope.BirthQuery) horoscope.ToolResult
}

// HistoryStore persists the transcript per session.
type HistoryStore interface {
	Load(ctx context.Context, sessionID string) ([]Message, error)
	Save(ctx context.Context, sessionID string, messages []Message, ttl time.Duration) error
}

// InvocationRecorder logs each tool invocation for auditing.
type InvocationRecorder interface {
	Record(ctx context.Context, record InvocationRecord) error
}

// TokenCounter estimates prompt tokens when the API omits usage data.
type TokenCounter interface {
	Count(text string) int
}

// Config wires runtime settings for the conversation loop.
type Config struct {
	Model           string
	Temperature     float32
	Persona         string
	MaxHistoryTurns int
	ModerationOn    bool
	HistoryTTL      time.Duration
}

type service struct {
	cfg      Config
	client   ChatClient
	gate     ModerationGate
	invoker  ToolInvoker
	history  HistoryStore
	recorder InvocationRecorder
	counter  TokenCounter
	logger   *slog.Logger
	now      func() time.Time
}

// NewService assembles the conversation loop.
func NewService(cfg Config, client ChatClient, gate ModerationGate, invoker ToolInvoker, history HistoryStore, recorder InvocationRecorder, counter TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		client:   client,
		gate:     gate,
		invoker:  invoker,
		history:  history,
		recorder: recorder,
		counter:  counter,
		logger:   logger.With("component", "chat.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Converse(ctx context.Context, req Request) (Response, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return Response{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}

	transcript, err := s.history.Load(ctx, req.SessionID)
	if err != nil {
		s.logger.Warn("history load failed, starting fresh", "sessionId", req.SessionID, "error", err)
		transcript = nil
	}

	if s.moderationBlocks(ctx, text) {
		s.appendAndSave(ctx, req.SessionID, transcript,
			Message{Role: "user", Content: text},
			Message{Role: "assistant", Content: moderationRefusal},
		)
		return Response{Reply: moderationRefusal, Moderated: true}, nil
	}

	messages := s.buildMessages(transcript, text)
	usage := metrics.TokenUsage{}
	if s.counter != nil {
		prompt := 0
		for _, m := range messages {
			prompt += s.counter.Count(m.Content)
		}
		usage.PromptTokens = prompt
		s.logger.Debug("prompt assembled", "sessionId", req.SessionID, "estimatedTokens", prompt)
	}

	reply, apiUsage, err := s.completeWithTools(ctx, req.SessionID, messages)
	if err != nil {
		return Response{}, err
	}
	if !apiUsage.IsZero() {
		usage = apiUsage
	} else {
		usage.TotalTokens = usage.PromptTokens
	}

	s.appendAndSave(ctx, req.SessionID, transcript,
		Message{Role: "user", Content: text},
		Message{Role: "assistant", Content: reply},
	)

	return Response{Reply: reply, Usage: usage}, nil
}

// moderationBlocks fails open: a broken moderation endpoint must not take
// the whole conversation down with it.
func (s *service) moderationBlocks(ctx context.Context, text string) bool {
	if !s.cfg.ModerationOn || s.gate == nil {
		return false
	}
	verdict, err := s.gate.CreateModeration(ctx, chatgpt.ModerationRequest{Input: text})
	if err != nil {
		s.logger.Warn("moderation check failed, allowing message", "error", err)
		return false
	}
	for _, result := range verdict.Results {
		if result.Flagged {
			s.logger.Info("message blocked by moderation")
			return true
		}
	}
	return false
}

func (s *service) completeWithTools(ctx context.Context, sessionID string, messages []chatgpt.Message) (string, metrics.TokenUsage, error) {
	usage := metrics.TokenUsage{}

	for round := 0; round <= maxToolRounds; round++ {
		req := chatgpt.ChatCompletionRequest{
			Model:       s.cfg.Model,
			Messages:    messages,
			Temperature: s.cfg.Temperature,
		}
		if round < maxToolRounds {
			req.Tools = astrologyTools()
		}

		completion, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", usage, apperrors.Wrap("llm_error", "chat completion failed", err)
		}
		if len(completion.Choices) == 0 {
			return "", usage, apperrors.Wrap("llm_error", "chat completion returned no choices", nil)
		}
		usage.PromptTokens += completion.Usage.PromptTokens
		usage.CompletionTokens += completion.Usage.CompletionTokens
		usage.TotalTokens += completion.Usage.TotalTokens

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, usage, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			messages = append(messages, s.executeToolCall(ctx, sessionID, call))
		}
	}

	return "", usage, apperrors.Wrap("llm_error", "model exceeded tool call budget", nil)
}

// executeToolCall never fails: argument problems and pipeline failures all
// come back as ToolResult envelopes the model can narrate.
func (s *service) executeToolCall(ctx context.Context, sessionID string, call chatgpt.ToolCall) chatgpt.Message {
	query, err := parseToolQuery(call)
	var result horoscope.ToolResult
	if err != nil {
		s.logger.Warn("malformed tool arguments", "tool", call.Function.Name, "error", err)
		result = horoscope.ToolResult{
			Status:  horoscope.ToolDegraded,
			Message: "The tool arguments were malformed. Ask the user to restate their birth details.",
		}
	} else {
		start := s.now()
		result = s.invoker.Invoke(ctx, query)
		s.record(ctx, sessionID, query, result, s.now().Sub(start))
	}

	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{"status":"degraded","message":"tool result could not be serialized"}`)
	}
	return chatgpt.Message{
		Role:       "tool",
		Content:    string(payload),
		ToolCallID: call.ID,
	}
}

func (s *service) record(ctx context.Context, sessionID string, query horoscope.BirthQuery, result horoscope.ToolResult, latency time.Duration) {
	if s.recorder == nil {
		return
	}
	entry := InvocationRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Place:     query.Place,
		Kind:      string(query.Kind),
		Status:    string(result.Status),
		LatencyMS: latency.Milliseconds(),
		CreatedAt: s.now(),
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record tool invocation", "error", err)
	}
}

func (s *service) buildMessages(transcript []Message, userText string) []chatgpt.Message {
	history := transcript
	if limit := s.cfg.MaxHistoryTurns * 2; limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	messages := make([]chatgpt.Message, 0, len(history)+2)
	messages = append(messages, chatgpt.Message{Role: "system", Content: s.cfg.Persona})
	for _, m := range history {
		messages = append(messages, chatgpt.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, chatgpt.Message{Role: "user", Content: userText})
	return messages
}

func (s *service) appendAndSave(ctx context.Context, sessionID string, transcript []Message, entries ...Message) {
	transcript = append(transcript, entries...)
	if limit := s.cfg.MaxHistoryTurns * 2; limit > 0 && len(transcript) > limit {
		transcript = transcript[len(transcript)-limit:]
	}
	if err := s.history.Save(ctx, sessionID, transcript, s.cfg.HistoryTTL); err != nil {
		s.logger.Warn("history save failed", "sessionId", sessionID, "error", err)
	}
}

func parseToolQuery(call chatgpt.ToolCall) (horoscope.BirthQuery, error) {
	var query horoscope.BirthQuery
	if err := json.Unmarshal([]byte(call.Function.Arguments), &query); err != nil {
		return horoscope.BirthQuery{}, err
	}
	switch call.Function.Name {
	case toolDailyPrediction:
		query.Kind = horoscope.DailyPrediction
	default:
		query.Kind = horoscope.ChartDetails
	}
	return query, nil
}

func astrologyTools() []chatgpt.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":   map[string]any{"type": "string", "description": "Person's name"},
			"day":    map[string]any{"type": "integer", "description": "Birth day of month, 1-31"},
			"month":  map[string]any{"type": "integer", "description": "Birth month, 1-12"},
			"year":   map[string]any{"type": "integer", "description": "Birth year, e.g. 1998"},
			"hour":   map[string]any{"type": "integer", "description": "Birth hour, 0-23"},
			"minute": map[string]any{"type": "integer", "description": "Birth minute, 0-59"},
			"place":  map[string]any{"type": "string", "description": "Birth place, e.g. Mumbai"},
		},
		"required": []string{"day", "month", "year", "hour", "minute", "place"},
	}
	return []chatgpt.Tool{
		{
			Type: "function",
			Function: chatgpt.ToolFunction{
				Name:        toolChartDetails,
				Description: "Compute vedic birth chart details for the given birth date, time and place.",
				Parameters:  params,
			},
		},
		{
			Type: "function",
			Function: chatgpt.ToolFunction{
				Name:        toolDailyPrediction,
				Description: "Fetch today's prediction based on the given birth details.",
				Parameters:  params,
			},
		},
	}
}
