// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix seconds and JSON columns are TEXT so the same schema
// runs on Postgres and SQLite.
const schema = `
-- Competitions
CREATE TABLE IF NOT EXISTS competition (
    id TEXT PRIMARY KEY,
    seq BIGINT NOT NULL,
    description TEXT NOT NULL,
    token TEXT NOT NULL,
    submission_start BIGINT NOT NULL,
    submission_end BIGINT NOT NULL,
    vote_start BIGINT NOT NULL,
    vote_end BIGINT NOT NULL,
    min_vote_tokens BIGINT NOT NULL,
    finalized BOOLEAN NOT NULL DEFAULT FALSE,
    winner TEXT,
    pot BIGINT NOT NULL DEFAULT 0 CHECK (pot >= 0),
    share_schedule TEXT NOT NULL,
    CHECK (submission_start < submission_end),
    CHECK (submission_end < vote_start),
    CHECK (vote_start < vote_end)
);

CREATE INDEX IF NOT EXISTS idx_competition_seq ON competition(seq);

-- Submissions, one per artist name
CREATE TABLE IF NOT EXISTS submission (
    competition_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position BIGINT NOT NULL,
    address TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (competition_id, name)
);

-- Artwork metadata per submission
CREATE TABLE IF NOT EXISTS artwork (
    competition_id TEXT NOT NULL,
    artist TEXT NOT NULL,
    position BIGINT NOT NULL,
    artwork_name TEXT NOT NULL,
    description TEXT NOT NULL,
    img_url TEXT NOT NULL,
    PRIMARY KEY (competition_id, artist, position)
);

-- One vote per address per competition
CREATE TABLE IF NOT EXISTS vote_log (
    competition_id TEXT NOT NULL,
    voter TEXT NOT NULL,
    artist TEXT NOT NULL,
    PRIMARY KEY (competition_id, voter)
);

-- Append-only vote records
CREATE TABLE IF NOT EXISTS vote_history (
    id TEXT PRIMARY KEY,
    competition_id TEXT NOT NULL,
    position BIGINT NOT NULL,
    voter TEXT NOT NULL,
    artist TEXT NOT NULL,
    cast_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_history_competition ON vote_history(competition_id, position);

-- Artist registry
CREATE TABLE IF NOT EXISTS artist_profile (
    address TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    registered BOOLEAN NOT NULL DEFAULT TRUE,
    bio TEXT NOT NULL,
    img_url TEXT NOT NULL,
    website TEXT NOT NULL,
    mediums TEXT NOT NULL,
    networks TEXT NOT NULL,
    competitions_participated BIGINT NOT NULL DEFAULT 0,
    competitions_won BIGINT NOT NULL DEFAULT 0
);

-- Admin pair, single row
CREATE TABLE IF NOT EXISTS admin (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    admin1 TEXT NOT NULL,
    admin2 TEXT NOT NULL
);

-- Distribution reports
CREATE TABLE IF NOT EXISTS distribution (
    id TEXT PRIMARY KEY,
    competition_id TEXT NOT NULL,
    distributed_at BIGINT NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_distribution_competition ON distribution(competition_id);
`
