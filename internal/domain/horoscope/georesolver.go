package horoscope

import (
	"context"
	"log/slog"
	"strings"
)

// GeoCandidate is the normalized row a geocoding provider returns for a
// free text place query.
type GeoCandidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	CountryCode string
	TimezoneID  string
}

// PrimaryGeocoder queries the open geocoding service. The boolean reports
// whether any candidate was returned; errors cover transport faults only.
type PrimaryGeocoder interface {
	Search(ctx context.Context, place string) (GeoCandidate, bool, error)
}

// SecondaryGeocoder queries the commercial geo detail endpoint as a fallback.
type SecondaryGeocoder interface {
	Lookup(ctx context.Context, place string) (GeoCandidate, bool, error)
}

// GeoResolver resolves a free text place to coordinates and a timezone.
// Resolution order: static table, primary provider, secondary provider.
// It returns a typed *LocationError and never propagates raw transport
// errors to the caller.
type GeoResolver struct {
	primary   PrimaryGeocoder
	secondary SecondaryGeocoder
	logger    *slog.Logger
}

// NewGeoResolver wires the resolution chain. secondary may be nil when the
// alternate provider is not configured.
func NewGeoResolver(primary PrimaryGeocoder, secondary SecondaryGeocoder, logger *slog.Logger) *GeoResolver {
	return &GeoResolver{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("component", "horoscope.georesolver"),
	}
}

// Resolve runs the chain. Each stage is attempted exactly once; a stage
// failure moves on to the next, and exhausting the chain yields a
// *LocationError carrying the raw input.
func (r *GeoResolver) Resolve(ctx context.Context, place string) (ResolvedLocation, error) {
	if strings.TrimSpace(place) == "" {
		return ResolvedLocation{}, &LocationError{RawPlaceInput: place}
	}

	if city, ok := lookupStaticCity(place); ok {
		return ResolvedLocation{
			Latitude:       city.lat,
			Longitude:      city.lon,
			TimezoneID:     city.tzID,
			UTCOffsetHours: city.utcOffset,
			CanonicalName:  city.name,
			OffsetKnown:    true,
		}, nil
	}

	if loc, ok := r.resolvePrimary(ctx, place); ok {
		return loc, nil
	}
	if loc, ok := r.resolveSecondary(ctx, place); ok {
		return loc, nil
	}

	return ResolvedLocation{}, &LocationError{RawPlaceInput: place}
}

func (r *GeoResolver) resolvePrimary(ctx context.Context, place string) (ResolvedLocation, bool) {
	if r.primary == nil {
		return ResolvedLocation{}, false
	}
	candidate, found, err := r.primary.Search(ctx, place)
	if err != nil {
		r.logger.Warn("primary geocoder failed", "place", place, "error", err)
		return ResolvedLocation{}, false
	}
	if !found {
		return ResolvedLocation{}, false
	}
	return candidateToLocation(candidate, place), true
}

func (r *GeoResolver) resolveSecondary(ctx context.Context, place string) (ResolvedLocation, bool) {
	if r.secondary == nil {
		return ResolvedLocation{}, false
	}
	candidate, found, err := r.secondary.Lookup(ctx, place)
	if err != nil {
		r.logger.Warn("secondary geocoder failed", "place", place, "error", err)
		return ResolvedLocation{}, false
	}
	if !found {
		return ResolvedLocation{}, false
	}
	return candidateToLocation(candidate, place), true
}

// candidateToLocation infers the timezone from the candidate's country when
// the country keeps a single zone; otherwise the location is provisionally
// UTC and the timezone stage refines it.
func candidateToLocation(candidate GeoCandidate, rawPlace string) ResolvedLocation {
	loc := ResolvedLocation{
		Latitude:      candidate.Latitude,
		Longitude:     candidate.Longitude,
		TimezoneID:    "UTC",
		CanonicalName: candidate.DisplayName,
	}
	if loc.CanonicalName == "" {
		loc.CanonicalName = strings.TrimSpace(rawPlace)
	}
	if zone, ok := lookupSingleZone(candidate.CountryCode); ok {
		loc.TimezoneID = zone.tzID
		loc.UTCOffsetHours = zone.utcOffset
		loc.OffsetKnown = true
		return loc
	}
	if candidate.TimezoneID != "" {
		loc.TimezoneID = candidate.TimezoneID
	}
	return loc
}
