// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the kiosk's two singleton records: voting statistics
and the polling-station location.

# Backends

	s := store.NewMemory(store.DefaultLocation)            // in-process
	s, err := store.NewSQL(ctx, conn, db.TypeSQLite, defs) // SQLite or PostgreSQL

Both satisfy Store. NewSQL expects a migrated connection (see package db) and
inserts the singleton rows on first use; existing rows are never replaced.

# Updating Statistics

Every counter change goes through ApplyStats, which reads the current record,
runs a pure function from package stats on it and writes the result back in
one step:

	st, err := s.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Apply(cur, result, time.Now().UTC())
	})

The SQL backend wraps this in a transaction (SELECT ... FOR UPDATE on
PostgreSQL). The record ID never changes, including across ResetStats.

# Errors

  - ErrNegativeCounter: UpdateStats was given a negative value
  - ErrInvalidLocation: municipality or locationNumber empty after trimming
  - ErrNotFound: a singleton row is missing
*/
package store
