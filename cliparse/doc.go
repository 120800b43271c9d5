// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: HS256 secret for bearer tokens (required)
  - Admin1, Admin2: The two administrator addresses (required)
  - EscrowAddress: Address holding prize pots (required)
  - TokenServiceURL: Token ledger base URL (required unless DevLedger)
  - DevLedger: Use the in-memory development ledger instead
  - FinalizeInterval: Auto-finalization sweep period (default: 30s)
  - CORSOrigins: Allowed browser origins (default: *)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	-jwt-secret         Bearer token secret
	-admin1, -admin2    Administrator addresses
	-escrow             Escrow address
	-token-url          Token service URL
	-dev-ledger         In-memory development ledger
	-finalize-interval  Sweep interval
	-cors-origins       Comma-separated origins
	-env-file           Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	JWT_SECRET        → -jwt-secret
	ADMIN_1, ADMIN_2  → -admin1, -admin2
	ESCROW_ADDRESS    → -escrow
	TOKEN_SERVICE_URL → -token-url
	DEV_LEDGER        → -dev-ledger
	FINALIZE_INTERVAL → -finalize-interval
	CORS_ORIGINS      → -cors-origins

CLI flags take precedence over environment variables. A missing env file is
not an error; variables it defines never override ones already exported.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL, JWT_SECRET, ADMIN_1, ADMIN_2 and ESCROW_ADDRESS must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - FINALIZE_INTERVAL must be a positive duration
*/
package cliparse
