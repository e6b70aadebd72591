package callreport

import (
	"context"

	"voice-reports/internal/audit"
)

// AuditAdapter bridges delivery outcomes to the shared audit.Service.
type AuditAdapter struct {
	Audit *audit.Service
}

func (a AuditAdapter) LogDelivery(ctx context.Context, d Delivery) error {
	if a.Audit == nil {
		return nil
	}
	var t audit.EventType
	switch d.Outcome {
	case OutcomeStored:
		t = audit.EventTypeWebhookStored
	case OutcomeIgnored:
		t = audit.EventTypeWebhookIgnored
	default:
		t = audit.EventTypeWebhookRejected
	}
	return a.Audit.Append(ctx, audit.Event{
		Type:         t,
		CallID:       d.CallID,
		WebhookEvent: d.EventType,
		Shape:        d.Shape.String(),
		IPAddress:    d.IPAddress,
		Message:      d.Reason,
		CreatedAt:    d.At,
	})
}
