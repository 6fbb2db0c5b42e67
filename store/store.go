// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrNegativeCounter = errors.New("counters must not be negative")
	ErrInvalidLocation = errors.New("municipality and locationNumber are required")
)

// StatsRepository holds the single statistics record
type StatsRepository interface {
	GetStats(ctx context.Context) (models.VotingStats, error)
	// UpdateStats merges the set fields and refreshes updatedAt
	UpdateStats(ctx context.Context, u models.StatsUpdate) (models.VotingStats, error)
	// ResetStats zeroes every counter, keeping the record ID
	ResetStats(ctx context.Context) (models.VotingStats, error)
	// ApplyStats runs fn on the current record and stores its result atomically
	ApplyStats(ctx context.Context, fn func(models.VotingStats) models.VotingStats) (models.VotingStats, error)
}

// LocationRepository holds the polling-station descriptor
type LocationRepository interface {
	GetLocation(ctx context.Context) (models.VotingLocation, error)
	UpdateLocation(ctx context.Context, req models.UpdateLocationRequest) (models.VotingLocation, error)
}

// Store is everything the kiosk persists
type Store interface {
	StatsRepository
	LocationRepository
}

// Defaults seeds a fresh store. Clock stamps updatedAt; nil means the wall
// clock.
type Defaults struct {
	Municipality   string
	LocationNumber string
	Clock          clock.Clock
}

// nowFunc returns the UTC time source the stores stamp records with
func (d Defaults) nowFunc() func() time.Time {
	c := d.Clock
	if c == nil {
		c = clock.New()
	}
	return func() time.Time { return c.Now().UTC() }
}

// DefaultLocation is used when no location is configured
var DefaultLocation = Defaults{
	Municipality:   "Centar",
	LocationNumber: "1234",
}

func validateLocation(req models.UpdateLocationRequest) (models.UpdateLocationRequest, error) {
	req.Municipality = strings.TrimSpace(req.Municipality)
	req.LocationNumber = strings.TrimSpace(req.LocationNumber)
	if req.Municipality == "" || req.LocationNumber == "" {
		return req, ErrInvalidLocation
	}
	return req, nil
}
