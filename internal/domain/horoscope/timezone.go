package horoscope

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// OffsetProvider answers numeric UTC offsets from an upstream timezone
// service, by zone identifier or by coordinates and date.
type OffsetProvider interface {
	OffsetByZone(ctx context.Context, timezoneID string) (float64, error)
	OffsetByCoordinates(ctx context.Context, latitude, longitude float64, date time.Time) (float64, error)
}

// TimezoneStrategy selects which provider call the resolver issues.
type TimezoneStrategy string

const (
	StrategyZone        TimezoneStrategy = "zone"
	StrategyCoordinates TimezoneStrategy = "coordinates"
)

// TimezoneResolver turns a resolved location and a birth date into a UTC
// offset. It never fails: any provider problem degrades to the location's
// known offset, or to the configured regional default. Producing a plausible
// chart beats producing no chart.
type TimezoneResolver struct {
	provider      OffsetProvider
	strategy      TimezoneStrategy
	defaultOffset float64
	logger        *slog.Logger
}

// NewTimezoneResolver builds a resolver. provider may be nil, in which case
// only the degradation path is available.
func NewTimezoneResolver(provider OffsetProvider, strategy TimezoneStrategy, defaultOffset float64, logger *slog.Logger) *TimezoneResolver {
	if strategy != StrategyZone && strategy != StrategyCoordinates {
		strategy = StrategyCoordinates
	}
	return &TimezoneResolver{
		provider:      provider,
		strategy:      strategy,
		defaultOffset: defaultOffset,
		logger:        logger.With("component", "horoscope.timezone"),
	}
}

// ResolveOffset always returns a finite offset. Locations whose offset was
// fixed during geocoding skip the network entirely.
func (r *TimezoneResolver) ResolveOffset(ctx context.Context, loc ResolvedLocation, birthDate time.Time) float64 {
	if loc.OffsetKnown {
		return loc.UTCOffsetHours
	}
	if r.provider == nil {
		return r.fallback(loc)
	}

	var (
		offset float64
		err    error
	)
	switch r.strategy {
	case StrategyZone:
		offset, err = r.provider.OffsetByZone(ctx, loc.TimezoneID)
	default:
		offset, err = r.provider.OffsetByCoordinates(ctx, loc.Latitude, loc.Longitude, birthDate)
	}
	if err != nil {
		r.logger.Warn("timezone lookup failed, using fallback offset", "timezoneId", loc.TimezoneID, "error", err)
		return r.fallback(loc)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < -12 || offset > 14 {
		r.logger.Warn("timezone lookup returned implausible offset, using fallback", "offset", offset)
		return r.fallback(loc)
	}
	return offset
}

func (r *TimezoneResolver) fallback(loc ResolvedLocation) float64 {
	if loc.OffsetKnown {
		return loc.UTCOffsetHours
	}
	return r.defaultOffset
}
