// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the cover rounds API server.

A cover round is a group exercise: everyone proposes a song, the group
scores the proposals, then everyone records a cover and shares it at a
listening party. Each round runs through signups, voting, covering and
celebration on five fixed dates.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_KEY_SALT=... DATABASE_URL=rounds.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first; real environment
variables win over it, and flags win over both.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - IP_HASH_SALT (-ip-salt): Secret for hashing voter IPs (default: admin salt)

# Architecture

  - round: the pure lifecycle engine (phase clock, vote tallies,
    reflection schedule, participation, snapshots)
  - handlers: HTTP request handlers gated by the engine
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and record types
  - auth: IDs, admin keys and user tokens
  - db: Connections, schema and fact loaders
  - cliparse: Configuration parsing

Logs are text on a terminal and JSON otherwise.
*/
package main
