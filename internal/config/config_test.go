package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsToMemoryStore(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("JWT_SECRET", "")

	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Store.Backend != StoreMemory {
		t.Fatalf("expected memory store, got %q", c.Store.Backend)
	}
	if c.App.Port != 3000 || c.HTTPAddr() != ":3000" {
		t.Fatalf("expected port 3000, got %d", c.App.Port)
	}
	if c.AuthEnabled() {
		t.Fatalf("expected auth disabled without JWT_SECRET")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TEST_ONLY_CFG_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("TEST_ONLY_CFG_KEY", "")
	os.Unsetenv("TEST_ONLY_CFG_KEY")
	t.Setenv("APP_PORT", "8081")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := os.Getenv("TEST_ONLY_CFG_KEY"); got != "from-file" {
		t.Fatalf("expected env file to be loaded, got %q", got)
	}
	if c.App.Port != 8081 {
		t.Fatalf("expected environment to win, got %d", c.App.Port)
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	t.Setenv("APP_PORT", "")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("APP_PORT", "abc")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate_PostgresRequiresConnectionFields(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		Store: StoreConfig{Backend: StorePostgres},
	}
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "DB_HOST") || !strings.Contains(err.Error(), "DB_NAME") {
		t.Fatalf("expected all missing fields reported, got %v", err)
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		Store: StoreConfig{Backend: StorePostgres},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "reports"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		Store: StoreConfig{Backend: StorePostgres},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "reports"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	c := Config{App: AppConfig{Env: "local", Port: 8080}, Store: StoreConfig{Backend: "mongo"}}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestValidate_AuthDefaultsTTLs(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "dev", Port: 8080},
		Store: StoreConfig{Backend: StoreMemory},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute || c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		t.Fatalf("unexpected ttls: %+v", c.Auth)
	}
}
