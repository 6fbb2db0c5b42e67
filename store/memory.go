// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/stats"
)

// Memory keeps everything in process memory. Nothing survives a restart.
type Memory struct {
	mu       sync.Mutex
	stats    models.VotingStats
	location models.VotingLocation
	now      func() time.Time
}

func NewMemory(d Defaults) *Memory {
	clk := d.nowFunc()
	now := clk()
	return &Memory{
		stats: models.VotingStats{
			ID:        uuid.NewString(),
			UpdatedAt: now,
		},
		location: models.VotingLocation{
			ID:             uuid.NewString(),
			Municipality:   d.Municipality,
			LocationNumber: d.LocationNumber,
			UpdatedAt:      now,
		},
		now: clk,
	}
}

func (m *Memory) GetStats(ctx context.Context) (models.VotingStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

func (m *Memory) UpdateStats(ctx context.Context, u models.StatsUpdate) (models.VotingStats, error) {
	if stats.Negative(u) {
		return models.VotingStats{}, ErrNegativeCounter
	}
	return m.ApplyStats(ctx, func(s models.VotingStats) models.VotingStats {
		return stats.Merge(s, u, m.now())
	})
}

func (m *Memory) ResetStats(ctx context.Context) (models.VotingStats, error) {
	return m.ApplyStats(ctx, func(s models.VotingStats) models.VotingStats {
		return stats.Reset(s, m.now())
	})
}

func (m *Memory) ApplyStats(ctx context.Context, fn func(models.VotingStats) models.VotingStats) (models.VotingStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := fn(m.stats)
	next.ID = m.stats.ID
	m.stats = next
	return m.stats, nil
}

func (m *Memory) GetLocation(ctx context.Context) (models.VotingLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.location, nil
}

func (m *Memory) UpdateLocation(ctx context.Context, req models.UpdateLocationRequest) (models.VotingLocation, error) {
	req, err := validateLocation(req)
	if err != nil {
		return models.VotingLocation{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.location.Municipality = req.Municipality
	m.location.LocationNumber = req.LocationNumber
	m.location.UpdatedAt = m.now()
	return m.location, nil
}
