package astrology

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
)

const defaultBaseURL = "https://json.astrologyapi.com/v1"

// UpstreamError is the uniform non-2xx result shape. Transport exceptions
// never propagate past this client.
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("astrology upstream error: status=%d endpoint=%s body=%s", e.StatusCode, e.Endpoint, e.Body)
}

// Client performs authenticated POST requests against the astrology compute
// provider. The Basic auth header is built once at construction.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client

	chartDetailsEndpoint    string
	dailyPredictionEndpoint string
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithEndpoints overrides the compute endpoint paths.
func WithEndpoints(chartDetails, dailyPrediction string) Option {
	return func(c *Client) {
		if chartDetails != "" {
			c.chartDetailsEndpoint = chartDetails
		}
		if dailyPrediction != "" {
			c.dailyPredictionEndpoint = dailyPrediction
		}
	}
}

// NewClient constructs the client. A missing credential is a deployment
// fault, reported here so startup fails before any query runs.
func NewClient(baseURL, userID, apiKey string, opts ...Option) (*Client, error) {
	header, err := BuildAuthHeader(userID, apiKey)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: header,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		chartDetailsEndpoint:    "horo_chart_details",
		dailyPredictionEndpoint: "sun_sign_prediction/daily",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BuildAuthHeader produces the Basic auth value from the two configured
// secrets. Either secret missing means the deployment, not the user's
// input, is broken.
func BuildAuthHeader(userID, apiKey string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("astrology user id is not configured")
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", errors.New("astrology api key is not configured")
	}
	token := base64.StdEncoding.EncodeToString([]byte(userID + ":" + apiKey))
	return "Basic " + token, nil
}

// Post submits a single JSON POST to the given endpoint path. Non-2xx
// responses become *UpstreamError; no retries are attempted.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode astrology request: %w", err)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build astrology request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("astrology request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(raw),
		}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read astrology response: %w", err)
	}
	return json.RawMessage(out), nil
}

// Compute satisfies horoscope.ChartComputer by routing the query kind to its
// endpoint. The payload is forwarded opaquely.
func (c *Client) Compute(ctx context.Context, kind horoscope.QueryKind, req horoscope.ChartRequest) (json.RawMessage, error) {
	endpoint := c.chartDetailsEndpoint
	if kind == horoscope.DailyPrediction {
		endpoint = c.dailyPredictionEndpoint
	}
	return c.Post(ctx, endpoint, req)
}

var _ horoscope.ChartComputer = (*Client)(nil)
