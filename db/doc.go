// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema, and implements the
competition store on database/sql.

# Drivers

Two drivers are supported, selected by DATABASE_TYPE:

	conn, err := db.Open(db.DriverPostgres, "postgres://localhost/easel?sslmode=disable")
	conn, err := db.Open(db.DriverSQLite, "file:easel.db")

SQLite connections are limited to one open connection. This serializes
writers and lets "file::memory:" databases be shared by every query.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Timestamps are stored as unix seconds and lists as JSON text so the same
statements run on both drivers.

# Tables

  - competition: Windows, pot, share schedule, finalized flag and winner
  - submission: Artists entered in a competition, with their vote tally
  - artwork: Artwork metadata per submission
  - vote_log: One row per voter per competition
  - vote_history: Append-only vote records
  - artist_profile: Global artist registry, unique names
  - admin: The administrator pair (single row)
  - distribution: Immutable payout reports

# Relationships

	competition 1──* submission 1──* artwork
	competition 1──* vote_log
	competition 1──* vote_history
	competition 1──* distribution

Child rows are deleted explicitly by Store.DeleteCompetition.

# Store

Store loads a competition as one aggregate and writes it back as one unit:

	store := db.NewStore(conn, db.DriverPostgres)
	err := store.WithTx(ctx, func(tx competition.Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		...
		return tx.SaveCompetition(ctx, comp)
	})

On Postgres GetCompetition locks the row (SELECT ... FOR UPDATE) inside a
transaction. The finalized flag and the pot are changed by conditional
updates (MarkFinalized, ClaimPot) that only succeed for the first caller.

Primary key and unique violations from either driver are reported as
competition.ErrAlreadyExists.
*/
package db
