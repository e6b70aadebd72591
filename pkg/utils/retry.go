package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ConnectRetry controls how long startup waits for a backing service.
type ConnectRetry struct {
	Attempts        int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (c ConnectRetry) withDefaults() ConnectRetry {
	out := c
	if out.Attempts <= 0 {
		out.Attempts = 5
	}
	if out.InitialInterval <= 0 {
		out.InitialInterval = 250 * time.Millisecond
	}
	if out.MaxInterval <= 0 {
		out.MaxInterval = 3 * time.Second
	}
	return out
}

// Retry runs op with exponential backoff until it succeeds, attempts run out or ctx ends.
// Wrap an error with backoff.Permanent to stop early.
func Retry(ctx context.Context, cfg ConnectRetry, op func() error) error {
	cfg = cfg.withDefaults()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(cfg.Attempts-1)), ctx)
	return backoff.Retry(op, policy)
}
