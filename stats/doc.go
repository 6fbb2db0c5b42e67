// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates scan outcomes into the kiosk counters.

Every function is pure: it takes the current VotingStats and returns the
next one. Stores apply them atomically through ApplyStats, so the kiosk
controller and the /api/scan handler share one set of rules:

	st.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Apply(cur, result, now)
	})

# Counting Rules

  - every scan increments TotalScans and exactly one of Successful,
    Failed or Invalid
  - an error increments the counter for its error type
  - an invalid ballot also counts as a multiple selection
  - Retry only increments Retries
  - Reset zeroes everything and keeps the ID

Consistent checks Successful+Failed+Invalid == TotalScans.
*/
package stats
