package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/config"
	apperrors "github.com/Hitarth-ai/ZodiAI/pkg/errors"
)

type stubChatService struct {
	resp    chat.Response
	err     error
	lastReq chat.Request
}

func (s *stubChatService) Converse(_ context.Context, req chat.Request) (chat.Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

type stubSessionService struct {
	session     chat.Session
	issueErr    error
	validID     string
	validateErr error
}

func (s *stubSessionService) Issue(_ context.Context) (chat.Session, error) {
	return s.session, s.issueErr
}

func (s *stubSessionService) Validate(_ context.Context, _ string) (string, error) {
	return s.validID, s.validateErr
}

type stubReader struct {
	records   []chat.InvocationRecord
	lastLimit int
}

func (r *stubReader) Recent(_ context.Context, limit int) ([]chat.InvocationRecord, error) {
	r.lastLimit = limit
	return r.records, nil
}

type staticGeocoder struct{}

func (staticGeocoder) Search(context.Context, string) (horoscope.GeoCandidate, bool, error) {
	return horoscope.GeoCandidate{}, false, nil
}

type staticComputer struct{}

func (staticComputer) Compute(context.Context, horoscope.QueryKind, horoscope.ChartRequest) (json.RawMessage, error) {
	return json.RawMessage(`{"sun_sign":"Pisces"}`), nil
}

func newTestServer(t *testing.T, chatSvc *stubChatService, sessionSvc *stubSessionService, reader *stubReader) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	geo := horoscope.NewGeoResolver(staticGeocoder{}, nil, logger)
	tz := horoscope.NewTimezoneResolver(nil, horoscope.StrategyCoordinates, 5.5, logger)
	orch := horoscope.NewOrchestrator(geo, tz, staticComputer{}, logger)
	adapter := horoscope.NewToolAdapter(orch, logger)

	handler := NewHandler(chatSvc, sessionSvc, adapter, reader, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, sessionSvc).Handler
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, &stubChatService{}, &stubSessionService{}, &stubReader{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSession(t *testing.T) {
	sessionSvc := &stubSessionService{session: chat.Session{ID: "s1", Token: "jwt-token"}}
	server := newTestServer(t, &stubChatService{}, sessionSvc, &stubReader{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "jwt-token")
}

func TestChatRequiresSession(t *testing.T) {
	server := newTestServer(t, &stubChatService{}, &stubSessionService{}, &stubReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"hi"}`))
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatRejectsInvalidToken(t *testing.T) {
	sessionSvc := &stubSessionService{validateErr: apperrors.Wrap("invalid_token", "bad token", nil)}
	server := newTestServer(t, &stubChatService{}, sessionSvc, &stubReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Authorization", "Bearer bogus")
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChatPassesSessionID(t *testing.T) {
	chatSvc := &stubChatService{resp: chat.Response{Reply: "the stars align"}}
	sessionSvc := &stubSessionService{validID: "s1"}
	server := newTestServer(t, chatSvc, sessionSvc, &stubReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"how is my day?"}`))
	req.Header.Set("Authorization", "Bearer valid")
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "the stars align")
	require.Equal(t, "s1", chatSvc.lastReq.SessionID)
	require.Equal(t, "how is my day?", chatSvc.lastReq.Message)
}

func TestChatMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.Wrap("invalid_input", "message cannot be empty", nil), http.StatusBadRequest},
		{apperrors.Wrap("llm_error", "completion failed", nil), http.StatusBadGateway},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		chatSvc := &stubChatService{err: tc.err}
		server := newTestServer(t, chatSvc, &stubSessionService{validID: "s1"}, &stubReader{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"hi"}`))
		req.Header.Set("Authorization", "Bearer valid")
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		require.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestComputeChartEnvelopeIsAlways200(t *testing.T) {
	server := newTestServer(t, &stubChatService{}, &stubSessionService{}, &stubReader{})

	// Known static city computes a chart.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts", strings.NewReader(`{"day":6,"month":3,"year":1998,"hour":14,"minute":30,"place":"Mumbai"}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result horoscope.ToolResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, horoscope.ToolOK, result.Status)

	// Unresolvable place still answers 200 with a typed envelope.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/charts", strings.NewReader(`{"day":6,"month":3,"year":1998,"hour":14,"minute":30,"place":"Zzzqx123"}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, horoscope.ToolLocationNotFound, result.Status)
}

func TestComputeChartRejectsMalformedBody(t *testing.T) {
	server := newTestServer(t, &stubChatService{}, &stubSessionService{}, &stubReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentInvocationsLimit(t *testing.T) {
	reader := &stubReader{records: []chat.InvocationRecord{{ID: "r1", Place: "Mumbai"}}}
	server := newTestServer(t, &stubChatService{}, &stubSessionService{}, reader)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invocations?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, reader.lastLimit)
	require.Contains(t, rec.Body.String(), "Mumbai")
}
