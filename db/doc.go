// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the reads
that feed the round engine.

# Connections

Open picks the driver from the config: lib/pq for postgres, the pure-Go
modernc.org/sqlite for sqlite.

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is valid on both PostgreSQL and SQLite.

# Tables

  - project: tenants; voting_enabled controls the phase sequence
  - participant: usernames and user tokens per project
  - round: the five round dates
  - signup: song proposals, one per user per round
  - vote: one 1-5 score per (round, song, user)
  - submission: cover recordings
  - reflection: initial and check-in write-ups

# Relationships

	project 1──* participant
	project 1──* round
	round 1──* signup, vote, submission, reflection
	signup 1──* vote (signup.id is the song ID)

# Reads

LoadRoundData fetches a round, its project, signups, votes and submissions
and packages them as round.Facts. Phase, tallies and participation are
never stored; they are derived from these facts on every request.
*/
package db
