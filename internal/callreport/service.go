package callreport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-reports/pkg/logger"
)

// Store is the persistence contract for call reports.
//
// It MUST be append-only: no dedup by call id, no updates, no deletes.
// ListAll returns records in insertion order, as copies the caller may mutate.
type Store interface {
	Append(ctx context.Context, r CallReport) error
	ListAll(ctx context.Context) ([]CallReport, error)
}

// AuditLogger records the outcome of each webhook delivery.
// Failures are ignored by the service.
type AuditLogger interface {
	LogDelivery(ctx context.Context, d Delivery) error
}

// Outcome of a single webhook delivery.
type Outcome string

const (
	OutcomeStored   Outcome = "stored"
	OutcomeIgnored  Outcome = "ignored"
	OutcomeRejected Outcome = "rejected"
)

// Delivery describes one processed webhook for the audit trail.
type Delivery struct {
	Outcome   Outcome
	EventType string
	CallID    string
	Shape     Shape
	IPAddress string
	Reason    string
	At        time.Time
}

// Service normalizes webhook payloads into CallReports.
// It holds no state of its own; the only side effect is Store.Append.
type Service struct {
	store Store
	audit AuditLogger
	clock func() time.Time
}

func NewService(store Store, audit AuditLogger) *Service {
	return &Service{store: store, audit: audit, clock: time.Now}
}

// Ingest normalizes one decoded webhook body and persists it when it is an
// end-of-call report. Other event types are acknowledged but not stored.
func (s *Service) Ingest(ctx context.Context, v any) (ack Ack, err error) {
	log := logger.From(ctx)
	d := Delivery{IPAddress: ClientIPFromContext(ctx)}

	defer func() {
		if r := recover(); r != nil {
			log.Error("webhook normalization panicked", "panic", fmt.Sprint(r))
			ack, err = Ack{}, ErrProcessing
		}
		if err != nil {
			d.Outcome = OutcomeRejected
			d.Reason = PublicMessage(err)
		}
		s.logDelivery(ctx, d)
	}()

	if s.store == nil {
		log.Error("call report store not configured")
		return Ack{}, ErrProcessing
	}

	p, err := ParsePayload(v)
	if err != nil {
		return Ack{}, err
	}
	d.Shape = p.Shape
	d.EventType = p.Body.Type

	callID, ok := CallIDString(ResolveCallID(p))
	if !ok {
		return Ack{}, ErrMissingCallID
	}
	d.CallID = callID

	enriched := Enrich(p.Body)

	if p.Body.Type != EventEndOfCallReport {
		name := p.Body.Type
		if name == "" {
			name = "unknown"
		}
		log.Debug("ignored non end-of-call webhook", "event_type", name, "call_id", callID)
		d.Outcome = OutcomeIgnored
		return Ack{Message: fmt.Sprintf("Ignored %s webhook", name), EventType: name, CallID: callID}, nil
	}

	rec := CallReport{CallID: callID, Payload: enriched, ReceivedAt: s.clock().UTC()}
	if err := s.store.Append(ctx, rec); err != nil {
		log.Error("call report append failed", "call_id", callID, "err", err)
		return Ack{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	d.Outcome = OutcomeStored
	return Ack{Message: p.Body.Type + " stored", EventType: p.Body.Type, CallID: callID, Stored: true}, nil
}

// ListAll returns every stored report in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]CallReport, error) {
	if s.store == nil {
		return nil, errors.New("callreport: store not configured")
	}
	return s.store.ListAll(ctx)
}

func (s *Service) logDelivery(ctx context.Context, d Delivery) {
	if s.audit == nil {
		return
	}
	d.At = s.clock().UTC()
	if err := s.audit.LogDelivery(ctx, d); err != nil {
		logger.From(ctx).Warn("webhook delivery audit failed", "err", err)
	}
}
