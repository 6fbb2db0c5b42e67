// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLiteMemory(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Running again must be a no-op
	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"voting_stats", "voting_location"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kiosk.db")

	conn, err := Open(TypeSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
}

func TestNegativeCounterRejected(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()
	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO voting_stats (id, total_scans, updated_at)
		VALUES ('s1', -1, CURRENT_TIMESTAMP)
	`)
	if err == nil {
		t.Error("expected CHECK constraint to reject a negative counter")
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
