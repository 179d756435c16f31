package horoscope

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubPrimary struct {
	candidate GeoCandidate
	found     bool
	err       error
	calls     int
}

func (s *stubPrimary) Search(_ context.Context, _ string) (GeoCandidate, bool, error) {
	s.calls++
	return s.candidate, s.found, s.err
}

type stubSecondary struct {
	candidate GeoCandidate
	found     bool
	err       error
	calls     int
}

func (s *stubSecondary) Lookup(_ context.Context, _ string) (GeoCandidate, bool, error) {
	s.calls++
	return s.candidate, s.found, s.err
}

func TestResolveStaticTableShortCircuits(t *testing.T) {
	primary := &stubPrimary{}
	secondary := &stubSecondary{}
	resolver := NewGeoResolver(primary, secondary, discardLogger())

	loc, err := resolver.Resolve(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.Equal(t, 19.076, loc.Latitude)
	require.Equal(t, 72.8777, loc.Longitude)
	require.Equal(t, "Asia/Kolkata", loc.TimezoneID)
	require.Equal(t, 5.5, loc.UTCOffsetHours)
	require.True(t, loc.OffsetKnown)
	require.Zero(t, primary.calls)
	require.Zero(t, secondary.calls)
}

func TestResolveStaticTableTrimsQualifiers(t *testing.T) {
	primary := &stubPrimary{}
	resolver := NewGeoResolver(primary, nil, discardLogger())

	for _, place := range []string{"Mumbai, Maharashtra, India", "  MUMBAI  ", "mumbai,"} {
		loc, err := resolver.Resolve(context.Background(), place)
		require.NoError(t, err, place)
		require.Equal(t, "Mumbai, India", loc.CanonicalName, place)
	}
	require.Zero(t, primary.calls)
}

func TestResolvePrimaryProviderMultiZoneCountry(t *testing.T) {
	primary := &stubPrimary{
		candidate: GeoCandidate{
			Latitude:    39.7817,
			Longitude:   -89.6501,
			DisplayName: "Springfield, Illinois, United States",
			CountryCode: "us",
		},
		found: true,
	}
	resolver := NewGeoResolver(primary, nil, discardLogger())

	loc, err := resolver.Resolve(context.Background(), "Springfield")
	require.NoError(t, err)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, "UTC", loc.TimezoneID)
	require.Zero(t, loc.UTCOffsetHours)
	require.False(t, loc.OffsetKnown)
}

func TestResolvePrimaryProviderSingleZoneCountry(t *testing.T) {
	primary := &stubPrimary{
		candidate: GeoCandidate{
			Latitude:    9.9312,
			Longitude:   76.2673,
			DisplayName: "Kochi, Kerala, India",
			CountryCode: "IN",
		},
		found: true,
	}
	resolver := NewGeoResolver(primary, nil, discardLogger())

	loc, err := resolver.Resolve(context.Background(), "Kochi")
	require.NoError(t, err)
	require.Equal(t, "Asia/Kolkata", loc.TimezoneID)
	require.Equal(t, 5.5, loc.UTCOffsetHours)
	require.True(t, loc.OffsetKnown)
}

func TestResolveFallsBackToSecondary(t *testing.T) {
	primary := &stubPrimary{err: errors.New("gateway timeout")}
	secondary := &stubSecondary{
		candidate: GeoCandidate{
			Latitude:    45.4215,
			Longitude:   -75.6972,
			DisplayName: "Ottawa",
			CountryCode: "ca",
			TimezoneID:  "America/Toronto",
		},
		found: true,
	}
	resolver := NewGeoResolver(primary, secondary, discardLogger())

	loc, err := resolver.Resolve(context.Background(), "Ottawa")
	require.NoError(t, err)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, secondary.calls)
	require.Equal(t, "America/Toronto", loc.TimezoneID)
	require.False(t, loc.OffsetKnown)
}

func TestResolveExhaustedChainReturnsLocationError(t *testing.T) {
	primary := &stubPrimary{found: false}
	secondary := &stubSecondary{found: false}
	resolver := NewGeoResolver(primary, secondary, discardLogger())

	_, err := resolver.Resolve(context.Background(), "Zzzqx123")
	var locErr *LocationError
	require.ErrorAs(t, err, &locErr)
	require.Equal(t, "Zzzqx123", locErr.RawPlaceInput)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, secondary.calls)
}

func TestResolveEmptyPlaceNeverTouchesProviders(t *testing.T) {
	primary := &stubPrimary{}
	secondary := &stubSecondary{}
	resolver := NewGeoResolver(primary, secondary, discardLogger())

	for _, place := range []string{"", "   ", "\t"} {
		_, err := resolver.Resolve(context.Background(), place)
		var locErr *LocationError
		require.ErrorAs(t, err, &locErr, place)
	}
	require.Zero(t, primary.calls)
	require.Zero(t, secondary.calls)
}
