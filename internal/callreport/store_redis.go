package callreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// listClient is the subset of redis commands the store needs.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisStore appends JSON-encoded reports to a single list.
// RPUSH order is insertion order.
type RedisStore struct {
	rdb listClient
	key string
}

func NewRedisStore(rdb listClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "voice-reports"
	}
	return &RedisStore{rdb: rdb, key: keyPrefix + ":call_reports"}
}

func (s *RedisStore) Append(ctx context.Context, r CallReport) error {
	if s.rdb == nil {
		return errors.New("callreport: redis client is nil")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("callreport: encode report: %w", err)
	}
	return s.rdb.RPush(ctx, s.key, data).Err()
}

func (s *RedisStore) ListAll(ctx context.Context) ([]CallReport, error) {
	if s.rdb == nil {
		return nil, errors.New("callreport: redis client is nil")
	}
	vals, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]CallReport, 0, len(vals))
	for i, v := range vals {
		var r CallReport
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("callreport: decode report %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}
