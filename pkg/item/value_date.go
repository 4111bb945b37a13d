package item

import (
	"encoding/json"
	"time"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// DateValue is a (start, end) pair of instants in UTC. A value constructed
// from a single instant has start == end.
type DateValue struct {
	Start time.Time
	End   time.Time
}

// NewDateValue builds a date value from exactly one or two instants. Any
// other arity is a programming error and returns ErrDateRange; this is the
// only hard construction failure in the package.
func NewDateValue(instants ...time.Time) (DateValue, error) {
	switch len(instants) {
	case 1:
		return DateValue{Start: instants[0].UTC(), End: instants[0].UTC()}, nil
	case 2:
		return DateValue{Start: instants[0].UTC(), End: instants[1].UTC()}, nil
	default:
		return DateValue{}, ErrDateRange
	}
}

func (v DateValue) Data() map[string]interface{} {
	if v.Start.IsZero() {
		return nil
	}
	data := map[string]interface{}{
		"start_utc": v.Start.UTC().Format(dateTimeLayout),
	}
	if !v.End.IsZero() {
		data["end_utc"] = v.End.UTC().Format(dateTimeLayout)
	}
	return data
}

func (v DateValue) Equal(other Value) bool {
	o, ok := other.(DateValue)
	return ok && v.Start.Equal(o.Start) && v.End.Equal(o.End)
}

// decodeDateValue reads the start/end pair. The server emits both a local
// and a UTC rendition; the UTC one wins when present. Date-only strings are
// accepted and resolve to midnight.
func decodeDateValue(raw json.RawMessage) (Value, bool) {
	var env struct {
		StartUTC string `json:"start_utc"`
		EndUTC   string `json:"end_utc"`
		Start    string `json:"start"`
		End      string `json:"end"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}

	start, okStart := parseInstant(env.StartUTC, env.Start)
	if !okStart {
		return nil, false
	}
	end, okEnd := parseInstant(env.EndUTC, env.End)
	if !okEnd {
		end = start
	}
	return DateValue{Start: start, End: end}, true
}

func parseInstant(utc, local string) (time.Time, bool) {
	s := utc
	if s == "" {
		s = local
	}
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
