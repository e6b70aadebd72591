package callreport

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// DeriveDuration returns the call length in whole seconds.
//
// An explicit numeric duration is trusted as-is (rounded). Otherwise start and
// end come from the top level, falling back to the nested call object. Unknown
// duration is 0, and so is any value outside the int range. End before start
// yields a negative value; it is not clamped.
func DeriveDuration(b ReportBody) int {
	if b.ExplicitDuration != nil {
		return roundHalfUp(*b.ExplicitDuration)
	}

	start, end := b.StartedAt, b.EndedAt
	if b.Call != nil {
		if start == nil {
			start = b.Call.StartedAt
		}
		if end == nil {
			end = b.Call.EndedAt
		}
	}

	s, ok := parseTimestamp(start)
	if !ok {
		return 0
	}
	e, ok := parseTimestamp(end)
	if !ok {
		return 0
	}
	// time.Duration saturates at about 292 years, so diff the epoch millis.
	return roundHalfUp((float64(e.UnixMilli()) - float64(s.UnixMilli())) / 1000)
}

// parseTimestamp accepts ISO-8601 style strings or epoch milliseconds.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	case json.Number:
		ms, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpochMillis(ms)
	case float64:
		return fromEpochMillis(t)
	default:
		return time.Time{}, false
	}
}

func fromEpochMillis(ms float64) (time.Time, bool) {
	if !inInt64Range(ms) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
// NaN, infinities and values that do not fit an int give 0.
func roundHalfUp(f float64) int {
	r := math.Floor(f + 0.5)
	if math.IsNaN(r) || r < math.MinInt || r >= math.MaxInt {
		return 0
	}
	return int(r)
}

// inInt64Range uses >= on the upper bound: float64(math.MaxInt64) is 2^63.
func inInt64Range(f float64) bool {
	return !math.IsNaN(f) && f >= math.MinInt64 && f < math.MaxInt64
}
