package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client queries the open geocoding service. Nominatim requires an
// identifying User-Agent on every request.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds the geocoding client.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchRow struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Search returns the highest ranked candidate for the place string. The
// boolean is false when the provider returns an empty result array.
func (c *Client) Search(ctx context.Context, place string) (horoscope.GeoCandidate, bool, error) {
	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("addressdetails", "1")
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return horoscope.GeoCandidate{}, false, fmt.Errorf("geocode request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("read geocode response: %w", err)
	}

	var rows []searchRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(rows) == 0 {
		return horoscope.GeoCandidate{}, false, nil
	}

	first := rows[0]
	lat, err := strconv.ParseFloat(strings.TrimSpace(first.Lat), 64)
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("parse geocode latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(first.Lon), 64)
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("parse geocode longitude %q: %w", first.Lon, err)
	}

	return horoscope.GeoCandidate{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: first.DisplayName,
		CountryCode: first.Address.CountryCode,
	}, true, nil
}

var _ horoscope.PrimaryGeocoder = (*Client)(nil)
