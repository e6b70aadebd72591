package appointments

import (
	"context"
	"sync"
)

// MemoryRepo keeps appointments for the life of the process.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []Appointment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
	return nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Appointment, len(r.items))
	copy(out, r.items)
	return out, nil
}
