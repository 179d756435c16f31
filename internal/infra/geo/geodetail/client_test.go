package geodetail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	astro, err := astrology.NewClient(server.URL, "612345", "topsecret")
	require.NoError(t, err)
	return NewClient(astro)
}

func TestLookupParsesFirstRow(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"geonames":[{"latitude":27.7172,"longitude":85.324,"place_name":"Kathmandu","timezone_id":"Asia/Kathmandu","country_code":"np"}]}`))
	})

	candidate, found, err := client.Lookup(context.Background(), "Kathmandu")

	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "/geo_details", gotPath)
	require.Equal(t, "Kathmandu", gotBody["place"])
	require.Equal(t, float64(1), gotBody["maxRows"])
	require.InDelta(t, 27.7172, candidate.Latitude, 1e-9)
	require.Equal(t, "Asia/Kathmandu", candidate.TimezoneID)
	require.Equal(t, "np", candidate.CountryCode)
}

func TestLookupEmptyGeonames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"geonames":[]}`))
	})

	_, found, err := client.Lookup(context.Background(), "Zzzqx123")
	require.NoError(t, err)
	require.False(t, found)
}

func TestLookupUpstreamErrorPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := client.Lookup(context.Background(), "Kathmandu")
	var upErr *astrology.UpstreamError
	require.ErrorAs(t, err, &upErr)
}
