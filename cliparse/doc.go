// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for project admin key HMAC (required)
  - IPHashSalt: Secret for hashing voter IPs (default: AdminKeySalt)

# Sources

Settings are read in this order, later sources winning:

 1. .env in the working directory (optional, never overrides the environment)
 2. Environment variables (PORT, DATABASE_URL, DATABASE_TYPE, ADMIN_KEY_SALT, IP_HASH_SALT)
 3. CLI flags (-p, -d, -t, --admin-salt, --ip-salt)

# Validation

ParseFlags returns an error if DATABASE_URL or ADMIN_KEY_SALT is missing,
the port is out of range, or the database type is unknown.
*/
package cliparse
