package timezone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	astro, err := astrology.NewClient(server.URL, "612345", "topsecret")
	require.NoError(t, err)
	return NewClient(astro), server
}

func TestOffsetByCoordinates(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"timezone":5.5}`))
	})

	date := time.Date(1998, time.March, 6, 0, 0, 0, 0, time.UTC)
	offset, err := client.OffsetByCoordinates(context.Background(), 19.076, 72.8777, date)

	require.NoError(t, err)
	require.Equal(t, 5.5, offset)
	require.Equal(t, "/timezone_with_dst", gotPath)
	require.Equal(t, "03-06-1998", gotBody["date"])
	require.InDelta(t, 19.076, gotBody["latitude"].(float64), 1e-9)
}

func TestOffsetByZone(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timezone", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"timezone":-7}`))
	})

	offset, err := client.OffsetByZone(context.Background(), "America/Phoenix")

	require.NoError(t, err)
	require.Equal(t, -7.0, offset)
	require.Equal(t, "America/Phoenix", gotBody["timezone_id"])
}

func TestOffsetUpstreamFailurePropagates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.OffsetByZone(context.Background(), "Asia/Kolkata")

	var upErr *astrology.UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
}

func TestOffsetMissingFieldIsAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.OffsetByZone(context.Background(), "Asia/Kolkata")
	require.ErrorContains(t, err, "non numeric timezone offset")
}
