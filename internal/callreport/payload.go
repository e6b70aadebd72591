package callreport

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape tells which historical webhook layout a payload used.
type Shape int

const (
	// ShapeFlat carries report fields (and legacy id fields) at the root.
	ShapeFlat Shape = iota
	// ShapeEnvelope wraps the report under "message".
	ShapeEnvelope
)

func (s Shape) String() string {
	if s == ShapeEnvelope {
		return "envelope"
	}
	return "flat"
}

// Payload is a webhook body with its shape resolved once.
// Raw is the root object as received; Body is the unwrapped report.
type Payload struct {
	Shape Shape
	Raw   map[string]any
	Body  ReportBody
}

// DecodePayload decodes a webhook body keeping numbers as json.Number.
func DecodePayload(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidPayload)
	}
	return v, nil
}

// ParsePayload resolves a decoded JSON value to a Payload.
// The envelope wins whenever a "message" key is present.
func ParsePayload(v any) (Payload, error) {
	root, ok := v.(map[string]any)
	if !ok || root == nil {
		return Payload{}, ErrInvalidPayload
	}

	if msg, has := root["message"]; has {
		body, ok := msg.(map[string]any)
		if !ok || body == nil {
			return Payload{}, fmt.Errorf("%w: message is not an object", ErrInvalidPayload)
		}
		return Payload{Shape: ShapeEnvelope, Raw: root, Body: parseBody(body)}, nil
	}
	return Payload{Shape: ShapeFlat, Raw: root, Body: parseBody(root)}, nil
}

// parseBody reads typed fields from its own copy of m, so nothing in the
// result aliases the caller's decoded value.
func parseBody(m map[string]any) ReportBody {
	fields := cloneMap(m)
	b := ReportBody{
		StartedAt:        fields["startedAt"],
		EndedAt:          fields["endedAt"],
		ExplicitDuration: numberField(fields, "duration"),
		Transcript:       stringField(fields, "transcript"),
		Fields:           fields,
	}
	if t, ok := fields["type"].(string); ok {
		b.Type = t
	}
	if call, ok := fields["call"].(map[string]any); ok && call != nil {
		b.Call = &CallInfo{
			ID:         call["id"],
			StartedAt:  call["startedAt"],
			EndedAt:    call["endedAt"],
			Transcript: stringField(call, "transcript"),
		}
	}
	return b
}

func stringField(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// numberField accepts only JSON numbers; numeric strings do not count.
func numberField(m map[string]any, key string) *float64 {
	var f float64
	switch v := m[key].(type) {
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil
		}
		f = n
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil
	}
	return &f
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
