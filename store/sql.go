// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-kiosk/db"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/stats"
)

const statsColumns = `id, total_scans, successful, failed, invalid, retries,
	multiple_selections, damaged, unreadable, updated_at`

// SQL persists the kiosk records in SQLite or PostgreSQL. Both tables hold
// exactly one row, created by NewSQL when missing.
type SQL struct {
	db     *sql.DB
	dbType string
	now    func() time.Time
}

// NewSQL wraps a migrated connection and seeds the singleton rows
func NewSQL(ctx context.Context, conn *sql.DB, dbType string, d Defaults) (*SQL, error) {
	s := &SQL{db: conn, dbType: dbType, now: d.nowFunc()}
	if err := s.seed(ctx, d); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQL) seed(ctx context.Context, d Defaults) error {
	now := s.now()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voting_stats`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count stats rows: %w", err)
	}
	if n == 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO voting_stats (id, updated_at) VALUES ($1, $2)
		`, uuid.NewString(), now)
		if err != nil {
			return fmt.Errorf("failed to seed stats: %w", err)
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voting_location`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count location rows: %w", err)
	}
	if n == 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO voting_location (id, municipality, location_number, updated_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), d.Municipality, d.LocationNumber, now)
		if err != nil {
			return fmt.Errorf("failed to seed location: %w", err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (models.VotingStats, error) {
	var st models.VotingStats
	err := row.Scan(
		&st.ID, &st.TotalScans, &st.Successful, &st.Failed, &st.Invalid, &st.Retries,
		&st.MultipleSelections, &st.Damaged, &st.Unreadable, &st.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNotFound
	}
	return st, err
}

func (s *SQL) GetStats(ctx context.Context) (models.VotingStats, error) {
	st, err := scanStats(s.db.QueryRowContext(ctx, `SELECT `+statsColumns+` FROM voting_stats LIMIT 1`))
	if err != nil {
		return st, fmt.Errorf("failed to query stats: %w", err)
	}
	return st, nil
}

func (s *SQL) UpdateStats(ctx context.Context, u models.StatsUpdate) (models.VotingStats, error) {
	if stats.Negative(u) {
		return models.VotingStats{}, ErrNegativeCounter
	}
	return s.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Merge(cur, u, s.now())
	})
}

func (s *SQL) ResetStats(ctx context.Context) (models.VotingStats, error) {
	return s.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Reset(cur, s.now())
	})
}

func (s *SQL) ApplyStats(ctx context.Context, fn func(models.VotingStats) models.VotingStats) (models.VotingStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + statsColumns + ` FROM voting_stats LIMIT 1`
	if s.dbType == db.TypePostgres {
		query += ` FOR UPDATE`
	}
	cur, err := scanStats(tx.QueryRowContext(ctx, query))
	if err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to query stats: %w", err)
	}

	next := fn(cur)
	next.ID = cur.ID

	_, err = tx.ExecContext(ctx, `
		UPDATE voting_stats
		SET total_scans = $1, successful = $2, failed = $3, invalid = $4, retries = $5,
		    multiple_selections = $6, damaged = $7, unreadable = $8, updated_at = $9
		WHERE id = $10
	`, next.TotalScans, next.Successful, next.Failed, next.Invalid, next.Retries,
		next.MultipleSelections, next.Damaged, next.Unreadable, next.UpdatedAt, next.ID)
	if err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to update stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to commit stats: %w", err)
	}
	return next, nil
}

func (s *SQL) GetLocation(ctx context.Context) (models.VotingLocation, error) {
	var loc models.VotingLocation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, municipality, location_number, updated_at
		FROM voting_location
		LIMIT 1
	`).Scan(&loc.ID, &loc.Municipality, &loc.LocationNumber, &loc.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return loc, ErrNotFound
	}
	if err != nil {
		return loc, fmt.Errorf("failed to query location: %w", err)
	}
	return loc, nil
}

// UpdateLocation rewrites the singleton row in one statement
func (s *SQL) UpdateLocation(ctx context.Context, req models.UpdateLocationRequest) (models.VotingLocation, error) {
	req, err := validateLocation(req)
	if err != nil {
		return models.VotingLocation{}, err
	}

	var loc models.VotingLocation
	err = s.db.QueryRowContext(ctx, `
		UPDATE voting_location
		SET municipality = $1, location_number = $2, updated_at = $3
		RETURNING id, municipality, location_number, updated_at
	`, req.Municipality, req.LocationNumber, s.now()).Scan(&loc.ID, &loc.Municipality, &loc.LocationNumber, &loc.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return loc, ErrNotFound
	}
	if err != nil {
		return loc, fmt.Errorf("failed to update location: %w", err)
	}
	return loc, nil
}
