// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and runs schema migrations.

# Opening

	conn, err := db.Open(db.TypeSQLite, "/data/kiosk.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses the pure-Go modernc.org/sqlite driver with a single open
connection; ":memory:" is accepted for tests. PostgreSQL uses lib/pq.
The "memory" type never reaches this package: it selects the in-process
store instead.

# Migrations

Migrate applies the embedded goose migrations under migrations/:

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		return err
	}

Safe to call on every start.

# Tables

  - voting_stats: the single statistics row (counters, updated_at)
  - voting_location: the single polling-station row

Counter columns carry CHECK (>= 0) constraints.
*/
package db
