// Command tokengen issues a dashboard token pair for an operator.
//
//	tokengen -user alice -role analyst
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"voice-reports/internal/auth"
	"voice-reports/internal/config"
	"voice-reports/internal/rbac"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	role := flag.String("role", rbac.RoleAnalyst, "owner, analyst or super_admin")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	if err := run(*envFile, *userID, *role); err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
}

func run(envFile, userID, role string) error {
	if userID == "" {
		return fmt.Errorf("-user is required")
	}
	if !rbac.IsKnownRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if !cfg.AuthEnabled() {
		return fmt.Errorf("JWT_SECRET is not set; dashboard auth is disabled")
	}
	m, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return err
	}
	pair, err := m.IssuePair(time.Now(), userID, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "issued %s token for %s, access ttl %s\n", role, userID, cfg.Auth.AccessTokenTTL)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pair)
}
