package appointments

import (
	"context"
	"errors"
	"time"
)

// Repository is the append-only persistence contract for appointments.
// ListAll returns insertion order.
type Repository interface {
	Append(ctx context.Context, a Appointment) error
	ListAll(ctx context.Context) ([]Appointment, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Create stamps createdAt and stores the appointment. No dedup by id.
func (s *Service) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if s.repo == nil {
		return Appointment{}, errors.New("appointments: repository not configured")
	}
	a.CreatedAt = s.clock().UTC()
	if err := s.repo.Append(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	if s.repo == nil {
		return nil, errors.New("appointments: repository not configured")
	}
	return s.repo.ListAll(ctx)
}
