package geodetail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
)

const endpoint = "geo_details"

// Client is the secondary place resolver. It reuses the astrology provider's
// geo detail endpoint, so the same Basic auth credential applies.
type Client struct {
	astro *astrology.Client
}

// NewClient wraps the low level astrology client.
func NewClient(astro *astrology.Client) *Client {
	return &Client{astro: astro}
}

type lookupRequest struct {
	Place   string `json:"place"`
	MaxRows int    `json:"maxRows"`
}

type lookupResponse struct {
	Geonames []struct {
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		PlaceName  string  `json:"place_name"`
		TimezoneID string  `json:"timezone_id"`
		Country    string  `json:"country_code"`
	} `json:"geonames"`
}

// Lookup returns the first candidate row for the place string.
func (c *Client) Lookup(ctx context.Context, place string) (horoscope.GeoCandidate, bool, error) {
	raw, err := c.astro.Post(ctx, endpoint, lookupRequest{Place: place, MaxRows: 1})
	if err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("geo detail lookup: %w", err)
	}

	var resp lookupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return horoscope.GeoCandidate{}, false, fmt.Errorf("decode geo detail response: %w", err)
	}
	if len(resp.Geonames) == 0 {
		return horoscope.GeoCandidate{}, false, nil
	}

	first := resp.Geonames[0]
	return horoscope.GeoCandidate{
		Latitude:    first.Latitude,
		Longitude:   first.Longitude,
		DisplayName: first.PlaceName,
		CountryCode: first.Country,
		TimezoneID:  first.TimezoneID,
	}, true, nil
}

var _ horoscope.SecondaryGeocoder = (*Client)(nil)
