package appointments

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo stores appointments in an INSERT-only table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

// PostgresSchema creates the appointments table if needed.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS appointments (
	seq          BIGSERIAL PRIMARY KEY,
	id           TEXT        NOT NULL,
	call_id      TEXT        NOT NULL,
	date         TEXT        NOT NULL,
	time         TEXT        NOT NULL,
	patient_name TEXT        NOT NULL,
	notes        TEXT        NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL
)
`

func (r *PostgresRepo) Append(ctx context.Context, a Appointment) error {
	if r.db == nil {
		return errors.New("appointments: postgres db is nil")
	}
	const q = `
INSERT INTO appointments (id, call_id, date, time, patient_name, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(ctx, q, a.ID, a.CallID, a.Date, a.Time, a.PatientName, a.Notes, a.CreatedAt)
	return err
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Appointment, error) {
	if r.db == nil {
		return nil, errors.New("appointments: postgres db is nil")
	}
	const q = `
SELECT id, call_id, date, time, patient_name, notes, created_at
FROM appointments
ORDER BY seq
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.CallID, &a.Date, &a.Time, &a.PatientName, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
