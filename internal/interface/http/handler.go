package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	apperrors "github.com/Hitarth-ai/ZodiAI/pkg/errors"
)

// InvocationReader exposes the recent tool invocation log for ops debugging.
type InvocationReader interface {
	Recent(ctx context.Context, limit int) ([]chat.InvocationRecord, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chatSvc     chat.Service
	sessionSvc  chat.SessionService
	adapter     *horoscope.ToolAdapter
	invocations InvocationReader
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chatSvc chat.Service, sessionSvc chat.SessionService, adapter *horoscope.ToolAdapter, invocations InvocationReader, logger *slog.Logger) *Handler {
	return &Handler{
		chatSvc:     chatSvc,
		sessionSvc:  sessionSvc,
		adapter:     adapter,
		invocations: invocations,
		logger:      logger.With("component", "http.handler"),
	}
}

// CreateSession issues an anonymous guest session for the chat frontend.
func (h *Handler) CreateSession(c *gin.Context) {
	session, err := h.sessionSvc.Issue(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "session_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Chat handles one conversation turn.
func (h *Handler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.SessionID = sessionID(c)

	resp, err := h.chatSvc.Converse(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "llm_error"):
			status = http.StatusBadGateway
			code = "llm_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ComputeChart invokes the resilient pipeline directly. The response status
// is always 200; failures ride inside the ToolResult envelope because the
// adapter's contract is that the operation always returns.
func (h *Handler) ComputeChart(c *gin.Context) {
	var query horoscope.BirthQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if query.Kind == "" {
		query.Kind = horoscope.ChartDetails
	}

	result := h.adapter.Invoke(c.Request.Context(), query)
	c.JSON(http.StatusOK, result)
}

// RecentInvocations lists the newest tool invocation audit entries.
func (h *Handler) RecentInvocations(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	records, err := h.invocations.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "querylog_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"invocations": records})
}
