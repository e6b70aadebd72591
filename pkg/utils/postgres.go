package utils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresConfig describes one database/sql pool. DSN carries the password; never log it.
type PostgresConfig struct {
	Driver string // "pgx" when the pgx stdlib driver is imported
	DSN    string

	MaxConns        int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	PingTimeout time.Duration
	Retry       ConnectRetry
}

func (c PostgresConfig) normalized() PostgresConfig {
	if c.Driver == "" {
		c.Driver = "pgx"
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 10
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 5 * time.Second
	}
	return c
}

// OpenPostgres returns a pool that answered a ping, waiting out a database
// that is still starting.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: dsn is empty")
	}
	cfg = cfg.normalized()

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := Retry(ctx, cfg.Retry, func() error { return PingPostgres(ctx, db, cfg.PingTimeout) }); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// PingPostgres is the readiness probe used at startup and by /healthz.
func PingPostgres(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// InTx commits when fn returns nil and rolls back otherwise, panics included.
func InTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	// no-op after a successful commit
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// ApplySchema runs idempotent DDL statements in one transaction.
func ApplySchema(ctx context.Context, db *sql.DB, stmts ...string) error {
	return InTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("postgres: schema statement %d: %w", i, err)
			}
		}
		return nil
	})
}
