package callreport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore keeps reports in an INSERT-only table.
// Insertion order is the BIGSERIAL seq column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// PostgresSchema creates the call_reports table if needed.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS call_reports (
	seq         BIGSERIAL PRIMARY KEY,
	call_id     TEXT        NOT NULL,
	payload     JSONB       NOT NULL,
	received_at TIMESTAMPTZ NOT NULL
)
`

func (s *PostgresStore) Append(ctx context.Context, r CallReport) error {
	if s.db == nil {
		return errors.New("callreport: postgres db is nil")
	}
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("callreport: encode payload: %w", err)
	}
	const q = `
INSERT INTO call_reports (call_id, payload, received_at)
VALUES ($1, $2, $3)
`
	_, err = s.db.ExecContext(ctx, q, r.CallID, string(payload), r.ReceivedAt)
	return err
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]CallReport, error) {
	if s.db == nil {
		return nil, errors.New("callreport: postgres db is nil")
	}
	const q = `
SELECT call_id, payload, received_at
FROM call_reports
ORDER BY seq
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CallReport, 0)
	for rows.Next() {
		var (
			r       CallReport
			payload []byte
		)
		if err := rows.Scan(&r.CallID, &payload, &r.ReceivedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &r.Payload); err != nil {
			return nil, fmt.Errorf("callreport: decode payload for %s: %w", r.CallID, err)
		}
		r.ReceivedAt = r.ReceivedAt.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
