package utils

import (
	"context"
	"testing"
	"time"
)

func TestOpenPostgres_RequiresDSN(t *testing.T) {
	if _, err := OpenPostgres(context.Background(), PostgresConfig{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestPostgresConfig_Normalized(t *testing.T) {
	c := PostgresConfig{DSN: "x"}.normalized()
	if c.Driver != "pgx" || c.MaxConns != 10 || c.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}

	c = PostgresConfig{Driver: "other", MaxConns: 3}.normalized()
	if c.Driver != "other" || c.MaxConns != 3 {
		t.Fatalf("explicit values overwritten: %+v", c)
	}
}
