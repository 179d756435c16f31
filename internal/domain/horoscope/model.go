package horoscope

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QueryKind selects which compute endpoint a query targets.
type QueryKind string

const (
	ChartDetails    QueryKind = "chart_details"
	DailyPrediction QueryKind = "daily_prediction"
)

// BirthQuery is the immutable input for one pipeline invocation.
type BirthQuery struct {
	Name   string    `json:"name"`
	Day    int       `json:"day"`
	Month  int       `json:"month"`
	Year   int       `json:"year"`
	Hour   int       `json:"hour"`
	Minute int       `json:"minute"`
	Place  string    `json:"place"`
	Kind   QueryKind `json:"queryKind"`
}

// Validate checks the field ranges before any network work happens.
func (q BirthQuery) Validate() error {
	if strings.TrimSpace(q.Place) == "" {
		return fmt.Errorf("place cannot be empty")
	}
	if q.Day < 1 || q.Day > 31 {
		return fmt.Errorf("day %d out of range [1,31]", q.Day)
	}
	if q.Month < 1 || q.Month > 12 {
		return fmt.Errorf("month %d out of range [1,12]", q.Month)
	}
	if q.Year < 1900 || q.Year > 2100 {
		return fmt.Errorf("year %d out of range [1900,2100]", q.Year)
	}
	if q.Hour < 0 || q.Hour > 23 {
		return fmt.Errorf("hour %d out of range [0,23]", q.Hour)
	}
	if q.Minute < 0 || q.Minute > 59 {
		return fmt.Errorf("minute %d out of range [0,59]", q.Minute)
	}
	switch q.Kind {
	case ChartDetails, DailyPrediction:
	default:
		return fmt.Errorf("unknown query kind %q", q.Kind)
	}
	return nil
}

// ResolvedLocation is the geographic answer for one query. OffsetKnown marks
// offsets that came from the static table or a single timezone country and
// need no further network lookup.
type ResolvedLocation struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TimezoneID     string  `json:"timezoneId"`
	UTCOffsetHours float64 `json:"utcOffsetHours"`
	CanonicalName  string  `json:"canonicalName"`
	OffsetKnown    bool    `json:"-"`
}

// ResultKind tags the terminal pipeline outcome.
type ResultKind string

const (
	ResultSuccess          ResultKind = "success"
	ResultLocationNotFound ResultKind = "location_not_found"
	ResultUpstreamFailure  ResultKind = "upstream_failure"
)

// FailureStage names the pipeline stage that produced an upstream failure.
type FailureStage string

const (
	StageGeocode  FailureStage = "geocode"
	StageTimezone FailureStage = "timezone"
	StageCompute  FailureStage = "compute"
)

// Result is the tagged outcome of one orchestrated query. Exactly one of the
// three kinds is set; the payload is forwarded opaquely.
type Result struct {
	Kind          ResultKind        `json:"kind"`
	Payload       json.RawMessage   `json:"payload,omitempty"`
	Location      *ResolvedLocation `json:"location,omitempty"`
	RawPlaceInput string            `json:"rawPlaceInput,omitempty"`
	Stage         FailureStage      `json:"stage,omitempty"`
	Detail        string            `json:"detail,omitempty"`
}

func successResult(payload json.RawMessage, loc ResolvedLocation) Result {
	return Result{Kind: ResultSuccess, Payload: payload, Location: &loc}
}

func locationNotFoundResult(rawPlace string) Result {
	return Result{Kind: ResultLocationNotFound, RawPlaceInput: rawPlace}
}

func upstreamFailureResult(stage FailureStage, detail string) Result {
	return Result{Kind: ResultUpstreamFailure, Stage: stage, Detail: detail}
}

// ToolStatus classifies the envelope handed back to the conversation loop.
type ToolStatus string

const (
	ToolOK               ToolStatus = "ok"
	ToolLocationNotFound ToolStatus = "location_not_found"
	ToolUnavailable      ToolStatus = "unavailable"
	ToolDegraded         ToolStatus = "degraded"
)

// ToolResult is always a concrete JSON serializable value; the adapter never
// returns a nil result and never lets a panic escape.
type ToolResult struct {
	Status   ToolStatus        `json:"status"`
	Data     json.RawMessage   `json:"data,omitempty"`
	Location *ResolvedLocation `json:"location,omitempty"`
	Place    string            `json:"place,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// LocationError reports that no resolution stage produced a candidate. It is
// user correctable, not a system fault.
type LocationError struct {
	RawPlaceInput string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("no location found for %q", e.RawPlaceInput)
}
