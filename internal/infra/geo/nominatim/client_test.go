package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchParsesFirstCandidate(t *testing.T) {
	var gotUA, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"lat":"19.0760900","lon":"72.8777000","display_name":"Mumbai, Maharashtra, India","address":{"country_code":"in"}},
			{"lat":"0","lon":"0","display_name":"decoy","address":{"country_code":"xx"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zodiai/1.0", 2*time.Second)
	candidate, found, err := client.Search(context.Background(), "Mumbai")

	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "zodiai/1.0", gotUA)
	require.Equal(t, "Mumbai", gotQuery)
	require.InDelta(t, 19.07609, candidate.Latitude, 1e-9)
	require.InDelta(t, 72.8777, candidate.Longitude, 1e-9)
	require.Equal(t, "Mumbai, Maharashtra, India", candidate.DisplayName)
	require.Equal(t, "in", candidate.CountryCode)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zodiai/1.0", 2*time.Second)
	_, found, err := client.Search(context.Background(), "Zzzqx123")

	require.NoError(t, err)
	require.False(t, found)
}

func TestSearchServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zodiai/1.0", 2*time.Second)
	_, _, err := client.Search(context.Background(), "Mumbai")

	require.ErrorContains(t, err, "status=429")
}

func TestSearchRejectsMalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"72.87","display_name":"x","address":{}}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zodiai/1.0", 2*time.Second)
	_, _, err := client.Search(context.Background(), "Mumbai")

	require.ErrorContains(t, err, "parse geocode latitude")
}
