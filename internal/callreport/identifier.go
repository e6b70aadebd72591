package callreport

import (
	"encoding/json"
	"strconv"
	"strings"
)

// idExtractor looks up one candidate location. It never fails; nil means absent.
type idExtractor func(p Payload) any

// callIDExtractors are tried in order; the first non-empty candidate wins.
// "id" is last because other objects in a payload carry ids too.
var callIDExtractors = []idExtractor{
	func(p Payload) any {
		if p.Body.Call == nil {
			return nil
		}
		return p.Body.Call.ID
	},
	rawField("callId"),
	rawField("call_id"),
	rawField("id"),
}

func rawField(key string) idExtractor {
	return func(p Payload) any { return p.Raw[key] }
}

// ResolveCallID returns the raw identifier candidate, or nil.
// Validation is left to CallIDString.
func ResolveCallID(p Payload) any {
	for _, extract := range callIDExtractors {
		if v := extract(p); !isBlank(v) {
			return v
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// CallIDString coerces a candidate to its string form.
// Only strings and numbers are usable, and the result must not be blank.
func CallIDString(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
