package horoscope

import (
	"context"
	"fmt"
	"log/slog"
)

const degradedInstruction = "The astrology computation tool is temporarily unavailable. Continue the conversation using your general astrological knowledge and let the user know computed chart data could not be included."

// ToolAdapter exposes the pipeline to the conversation loop as a single
// operation that always returns a concrete ToolResult. It is the last line
// of defense: panics and unexpected failures become degraded envelopes so
// the enclosing conversation never stalls.
type ToolAdapter struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// NewToolAdapter wraps the orchestrator with the containment boundary.
func NewToolAdapter(orchestrator *Orchestrator, logger *slog.Logger) *ToolAdapter {
	return &ToolAdapter{
		orchestrator: orchestrator,
		logger:       logger.With("component", "horoscope.tooladapter"),
	}
}

// Invoke runs one query. The named return lets the deferred recover replace
// the result after a panic anywhere below this frame.
func (a *ToolAdapter) Invoke(ctx context.Context, query BirthQuery) (result ToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("tool invocation panicked", "panic", fmt.Sprint(rec), "place", query.Place)
			result = ToolResult{
				Status:  ToolDegraded,
				Place:   query.Place,
				Message: degradedInstruction,
			}
		}
	}()

	if err := query.Validate(); err != nil {
		return ToolResult{
			Status:  ToolDegraded,
			Place:   query.Place,
			Message: fmt.Sprintf("The birth details were invalid (%v). Ask the user to restate their birth date, time and place, then try again.", err),
		}
	}

	res := a.orchestrator.Run(ctx, query)
	switch res.Kind {
	case ResultSuccess:
		return ToolResult{
			Status:   ToolOK,
			Data:     res.Payload,
			Location: res.Location,
			Place:    query.Place,
		}
	case ResultLocationNotFound:
		return ToolResult{
			Status:  ToolLocationNotFound,
			Place:   res.RawPlaceInput,
			Message: fmt.Sprintf("The birth place %q could not be located. Ask the user for the nearest major city and try again.", res.RawPlaceInput),
		}
	default:
		return ToolResult{
			Status:  ToolUnavailable,
			Place:   query.Place,
			Message: "The astrology service is temporarily unavailable. Answer from general astrological knowledge and mention that live chart data is missing.",
		}
	}
}
