// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the easel API server.

Easel runs art competitions: admins open a competition with submission and
voting windows, artists submit work, token holders vote once each, and the
funded prize pot is split among the top ranked artists after voting ends.

# Starting the Server

The server reads CLI flags, an optional .env file and the environment:

	DATABASE_URL=file:easel.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Bearer token signing secret
  - ADMIN_1, ADMIN_2 (--admin1, --admin2): Initial admin pair
  - ESCROW_ADDRESS (--escrow): Address holding prize pots

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_SERVICE_URL (--token-url): Token service (required unless DEV_LEDGER)
  - DEV_LEDGER (--dev-ledger): Non-persistent in-memory ledger for development
  - FINALIZE_INTERVAL (--finalize-interval): Auto-finalization sweep (default: 30s)
  - CORS_ORIGINS (--cors-origins): Allowed browser origins

# Architecture

  - competition: Lifecycle, voting, finalization and payouts
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, metrics, caller identity, CORS, JSON helpers
  - db: Schema and the SQL-backed store
  - token: Token service client and in-memory ledger
  - realtime: WebSocket live feed
  - auth: Bearer tokens and caller identity
  - metrics: Prometheus collectors
  - models: Request, response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
