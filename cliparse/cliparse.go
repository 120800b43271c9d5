// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	JWTSecret        string
	Admin1           string
	Admin2           string
	EscrowAddress    string
	TokenServiceURL  string
	DevLedger        bool
	FinalizeInterval time.Duration
	CORSOrigins      []string
}

// ParseFlags reads flags, then an optional .env file, then the environment.
// Flags win over the environment, and variables already set in the
// environment win over the .env file.
func ParseFlags(args []string) (Config, error) {
	var (
		cfg      Config
		envFile  string
		origins  string
		interval string
	)

	fs := flag.NewFlagSet("easel", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.TokenServiceURL, "token-url", "", "Token service base URL")
	fs.BoolVar(&cfg.DevLedger, "dev-ledger", false, "Use a non-persistent in-memory token ledger (development only)")
	fs.StringVar(&origins, "cors-origins", "", "Comma-separated allowed CORS origins")
	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	// Identities and secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Bearer token signing secret (prefer env)")
	fs.StringVar(&cfg.Admin1, "admin1", "", "First admin address")
	fs.StringVar(&cfg.Admin2, "admin2", "", "Second admin address")
	fs.StringVar(&cfg.EscrowAddress, "escrow", "", "Escrow address holding prize pots")

	// Workers
	fs.StringVar(&interval, "finalize-interval", "", "Auto-finalization sweep interval (e.g. 30s)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	fromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	fromEnv(&cfg.DatabaseType, "DATABASE_TYPE")
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q (sqlite or postgres)", cfg.DatabaseType)
	}

	fromEnv(&cfg.TokenServiceURL, "TOKEN_SERVICE_URL")
	if !cfg.DevLedger {
		if v := os.Getenv("DEV_LEDGER"); v != "" {
			dev, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid DEV_LEDGER %q", v)
			}
			cfg.DevLedger = dev
		}
	}
	// Pots are persisted, so escrow balances must be too
	if cfg.TokenServiceURL == "" && !cfg.DevLedger {
		return Config{}, errors.New("TOKEN_SERVICE_URL required (or -dev-ledger for an in-memory ledger)")
	}
	if cfg.TokenServiceURL != "" && cfg.DevLedger {
		return Config{}, errors.New("TOKEN_SERVICE_URL and DEV_LEDGER are mutually exclusive")
	}

	// Secrets and identities - MUST be provided
	fromEnv(&cfg.JWTSecret, "JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	fromEnv(&cfg.Admin1, "ADMIN_1")
	fromEnv(&cfg.Admin2, "ADMIN_2")
	if cfg.Admin1 == "" || cfg.Admin2 == "" {
		return Config{}, errors.New("ADMIN_1 and ADMIN_2 required")
	}

	fromEnv(&cfg.EscrowAddress, "ESCROW_ADDRESS")
	if cfg.EscrowAddress == "" {
		return Config{}, errors.New("ESCROW_ADDRESS required")
	}

	fromEnv(&interval, "FINALIZE_INTERVAL")
	cfg.FinalizeInterval = 30 * time.Second
	if interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid finalize interval %q", interval)
		}
		cfg.FinalizeInterval = d
	}

	fromEnv(&origins, "CORS_ORIGINS")
	cfg.CORSOrigins = splitList(origins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}

// fromEnv fills an unset value from the environment
func fromEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
