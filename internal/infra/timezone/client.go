package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
)

const (
	zoneEndpoint        = "timezone"
	coordinatesEndpoint = "timezone_with_dst"
)

// Client resolves numeric UTC offsets against the astrology provider's
// timezone endpoints. Both strategies share the provider's Basic auth.
type Client struct {
	astro *astrology.Client
}

// NewClient wraps the low level astrology client.
func NewClient(astro *astrology.Client) *Client {
	return &Client{astro: astro}
}

type offsetResponse struct {
	Timezone json.Number `json:"timezone"`
}

// OffsetByZone looks up the offset for a timezone identifier.
func (c *Client) OffsetByZone(ctx context.Context, timezoneID string) (float64, error) {
	body := map[string]string{"timezone_id": timezoneID}
	return c.fetchOffset(ctx, zoneEndpoint, body)
}

// OffsetByCoordinates performs the DST aware lookup by coordinates and date.
func (c *Client) OffsetByCoordinates(ctx context.Context, latitude, longitude float64, date time.Time) (float64, error) {
	body := map[string]any{
		"latitude":  latitude,
		"longitude": longitude,
		"date":      date.Format("01-02-2006"),
	}
	return c.fetchOffset(ctx, coordinatesEndpoint, body)
}

func (c *Client) fetchOffset(ctx context.Context, endpoint string, body any) (float64, error) {
	raw, err := c.astro.Post(ctx, endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("timezone lookup: %w", err)
	}

	var resp offsetResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("decode timezone response: %w", err)
	}
	offset, err := resp.Timezone.Float64()
	if err != nil {
		return 0, fmt.Errorf("non numeric timezone offset %q: %w", resp.Timezone.String(), err)
	}
	return offset, nil
}

var _ horoscope.OffsetProvider = (*Client)(nil)
