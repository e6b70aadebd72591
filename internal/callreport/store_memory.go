package callreport

import (
	"context"
	"sync"
)

// MemoryStore is the default in-process store. Contents are lost on restart.
// Records are deep-copied on the way in and on the way out.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []CallReport
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(ctx context.Context, r CallReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r.Clone())
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]CallReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CallReport, len(s.reports))
	for i, r := range s.reports {
		out[i] = r.Clone()
	}
	return out, nil
}

// Len reports how many records are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
