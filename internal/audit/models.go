package audit

import "time"

// Event is an immutable, append-only record of one webhook delivery.
//
// Invariants:
// - Events are never updated or deleted.
// - Recording is best-effort; ingestion never blocks on audit failures.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`

	// CallID is empty when the delivery was rejected before an id was resolved.
	CallID string `json:"call_id,omitempty"`

	// WebhookEvent is the upstream event discriminator, e.g. end-of-call-report.
	WebhookEvent string `json:"webhook_event,omitempty"`

	// Shape is the payload layout: envelope or flat.
	Shape string `json:"shape,omitempty"`

	IPAddress string `json:"ip_address,omitempty"`

	// Message holds the rejection reason returned to the sender.
	Message string `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeWebhookStored   EventType = "webhook_stored"
	EventTypeWebhookIgnored  EventType = "webhook_ignored"
	EventTypeWebhookRejected EventType = "webhook_rejected"
)
