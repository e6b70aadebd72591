package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
type Repository interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context) ([]Event, error)
}

// Service records webhook delivery outcomes for operators.
// Audit is internal-only; it is never shown to webhook senders.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// Recent returns up to limit events, newest first. limit <= 0 returns all.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	evs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(evs))
	for i := len(evs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, evs[i])
	}
	return out, nil
}
