// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/cover-rounds/cliparse"
)

// driverNames maps config database types to database/sql driver names
var driverNames = map[string]string{
	cliparse.DatabasePostgres: "postgres",
	cliparse.DatabaseSQLite:   "sqlite",
}

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, ok := driverNames[cfg.DatabaseType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	// SQLite allows a single writer
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to SQL both PostgreSQL and SQLite accept.
const schema = `
-- Projects (tenants)
CREATE TABLE IF NOT EXISTS project (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    voting_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    user_token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (project_id, username)
);

CREATE INDEX IF NOT EXISTS idx_participant_project_id ON participant(project_id);

-- Rounds
CREATE TABLE IF NOT EXISTS round (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    signup_opens TIMESTAMP NOT NULL,
    voting_opens TIMESTAMP NOT NULL,
    covering_begins TIMESTAMP NOT NULL,
    covers_due TIMESTAMP NOT NULL,
    listening_party TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_round_project_id ON round(project_id);

-- Signups (song proposals)
CREATE TABLE IF NOT EXISTS signup (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    song_title TEXT NOT NULL,
    artist TEXT NOT NULL,
    youtube_link TEXT NOT NULL DEFAULT '',
    additional_comments TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (round_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_signup_round_id ON signup(round_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    song_id TEXT NOT NULL REFERENCES signup(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    score INTEGER NOT NULL CHECK (score >= 1 AND score <= 5),
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ip_hash TEXT,
    PRIMARY KEY (round_id, song_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_round_id ON vote(round_id);

-- Cover submissions
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    audio_url TEXT NOT NULL,
    lyrics TEXT NOT NULL DEFAULT '',
    additional_comments TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submission_round_id ON submission(round_id);

-- Reflections
CREATE TABLE IF NOT EXISTS reflection (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    kind TEXT NOT NULL CHECK (kind IN ('initial', 'checkin')),
    title TEXT NOT NULL,
    markdown TEXT NOT NULL,
    is_public BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reflection_round_user ON reflection(round_id, user_id);
`
