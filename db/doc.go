// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL uses github.com/lib/pq and SQLite uses modernc.org/sqlite.
SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidate: Registered candidates (written only by the seed command)
  - ballot: Encrypted ballots, append-only, no voter reference
  - app_user: Voter accounts keyed by UUID
  - session: Server-side session payloads keyed by session token

No table stores plaintext preferences.
*/
package db
