package callreport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"voice-reports/internal/transcript"
)

// EventEndOfCallReport is the only event type that gets persisted.
const EventEndOfCallReport = "end-of-call-report"

// CallInfo is the nested "call" object of the current integration shape.
// ID may be a string or a json.Number; timestamps may be strings or epoch millis.
type CallInfo struct {
	ID         any
	StartedAt  any
	EndedAt    any
	Transcript *string
}

// ReportBody is the unwrapped report, independent of the envelope it came in.
// Fields keeps every key exactly as received so nothing is lost on storage.
type ReportBody struct {
	Type             string
	Call             *CallInfo
	StartedAt        any
	EndedAt          any
	ExplicitDuration *float64
	Transcript       *string

	Fields map[string]any
}

// TranscriptText prefers the top-level transcript over call.transcript.
func (b ReportBody) TranscriptText() string {
	if b.Transcript != nil {
		return *b.Transcript
	}
	if b.Call != nil && b.Call.Transcript != nil {
		return *b.Call.Transcript
	}
	return ""
}

func (b ReportBody) clone() ReportBody {
	out := b
	out.Fields = cloneMap(b.Fields)
	out.StartedAt = cloneValue(b.StartedAt)
	out.EndedAt = cloneValue(b.EndedAt)
	if b.Call != nil {
		c := *b.Call
		c.ID = cloneValue(b.Call.ID)
		c.StartedAt = cloneValue(b.Call.StartedAt)
		c.EndedAt = cloneValue(b.Call.EndedAt)
		if b.Call.Transcript != nil {
			t := *b.Call.Transcript
			c.Transcript = &t
		}
		out.Call = &c
	}
	if b.ExplicitDuration != nil {
		d := *b.ExplicitDuration
		out.ExplicitDuration = &d
	}
	if b.Transcript != nil {
		t := *b.Transcript
		out.Transcript = &t
	}
	return out
}

// EnrichedReport is the stored payload: the received body plus derived fields.
type EnrichedReport struct {
	ReportBody

	Duration          int
	UserQuestion      string
	AssistantResponse string
	Conversation      transcript.Conversation
}

// Enrich derives duration and conversation fields for a report body.
func Enrich(b ReportBody) EnrichedReport {
	conv := transcript.Segment(b.TranscriptText())
	return EnrichedReport{
		ReportBody:        b,
		Duration:          DeriveDuration(b),
		UserQuestion:      conv.FirstUser(),
		AssistantResponse: conv.LastAssistant(),
		Conversation:      conv,
	}
}

// MarshalJSON writes the received fields with the derived ones laid over them.
func (e EnrichedReport) MarshalJSON() ([]byte, error) {
	out := cloneMap(e.Fields)
	if out == nil {
		out = map[string]any{}
	}
	out["duration"] = e.Duration
	out["userQuestion"] = e.UserQuestion
	out["assistantResponse"] = e.AssistantResponse
	out["conversation"] = e.Conversation
	return json.Marshal(out)
}

func (e *EnrichedReport) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("callreport: payload is not an object")
	}

	var derived struct {
		Duration          json.Number             `json:"duration"`
		UserQuestion      string                  `json:"userQuestion"`
		AssistantResponse string                  `json:"assistantResponse"`
		Conversation      transcript.Conversation `json:"conversation"`
	}
	if err := json.Unmarshal(data, &derived); err != nil {
		return err
	}

	*e = EnrichedReport{
		ReportBody:        parseBody(m),
		UserQuestion:      derived.UserQuestion,
		AssistantResponse: derived.AssistantResponse,
		Conversation:      derived.Conversation,
	}
	if derived.Duration != "" {
		f, err := derived.Duration.Float64()
		if err != nil {
			return fmt.Errorf("callreport: duration: %w", err)
		}
		e.Duration = roundHalfUp(f)
	}
	if e.Conversation.User == nil {
		e.Conversation.User = []string{}
	}
	if e.Conversation.Assistant == nil {
		e.Conversation.Assistant = []string{}
	}
	return nil
}

// CallReport is the canonical stored record. Never mutated after creation.
type CallReport struct {
	CallID     string         `json:"callId"`
	Payload    EnrichedReport `json:"payload"`
	ReceivedAt time.Time      `json:"receivedAt"`
}

// Clone returns a deep copy so callers cannot reach stored state.
func (r CallReport) Clone() CallReport {
	out := r
	out.Payload.ReportBody = r.Payload.ReportBody.clone()
	out.Payload.Conversation = r.Payload.Conversation.Clone()
	return out
}

// Ack is returned to the webhook sender.
type Ack struct {
	Message string `json:"message"`

	EventType string `json:"-"`
	CallID    string `json:"-"`
	Stored    bool   `json:"-"`
}
