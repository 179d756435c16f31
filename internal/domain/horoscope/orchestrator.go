package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ChartRequest is the body shape the compute provider expects.
type ChartRequest struct {
	Day   int     `json:"day"`
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Hour  int     `json:"hour"`
	Min   int     `json:"min"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Tzone float64 `json:"tzone"`
}

// ChartComputer submits one chart computation to the provider endpoint
// selected by the query kind. The payload is opaque JSON.
type ChartComputer interface {
	Compute(ctx context.Context, kind QueryKind, req ChartRequest) (json.RawMessage, error)
}

// Orchestrator composes geo resolution, timezone resolution and chart
// computation into one linear pipeline. Run returns exactly one Result
// variant and never an error; stage failures become typed variants.
type Orchestrator struct {
	geo      *GeoResolver
	timezone *TimezoneResolver
	computer ChartComputer
	logger   *slog.Logger
}

// NewOrchestrator wires the pipeline stages.
func NewOrchestrator(geo *GeoResolver, timezone *TimezoneResolver, computer ChartComputer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		geo:      geo,
		timezone: timezone,
		computer: computer,
		logger:   logger.With("component", "horoscope.orchestrator"),
	}
}

// Run executes Geocoding -> TimezoneResolution -> Computing -> Done.
// The timezone stage cannot fail; the other stages exit early into their
// terminal variant.
func (o *Orchestrator) Run(ctx context.Context, query BirthQuery) Result {
	loc, err := o.geo.Resolve(ctx, query.Place)
	if err != nil {
		var locErr *LocationError
		if errors.As(err, &locErr) {
			o.logger.Info("place not resolved", "place", query.Place)
			return locationNotFoundResult(locErr.RawPlaceInput)
		}
		return upstreamFailureResult(StageGeocode, err.Error())
	}

	birthDate := time.Date(query.Year, time.Month(query.Month), query.Day, query.Hour, query.Minute, 0, 0, time.UTC)
	offset := o.timezone.ResolveOffset(ctx, loc, birthDate)
	loc.UTCOffsetHours = offset

	payload, err := o.computer.Compute(ctx, query.Kind, ChartRequest{
		Day:   query.Day,
		Month: query.Month,
		Year:  query.Year,
		Hour:  query.Hour,
		Min:   query.Minute,
		Lat:   loc.Latitude,
		Lon:   loc.Longitude,
		Tzone: offset,
	})
	if err != nil {
		o.logger.Warn("chart computation failed", "kind", query.Kind, "error", err)
		return upstreamFailureResult(StageCompute, err.Error())
	}

	o.logger.Info("chart computed", "kind", query.Kind, "place", loc.CanonicalName, "tzone", offset)
	return successResult(payload, loc)
}
