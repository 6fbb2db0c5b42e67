// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"strconv"
	"time"

	"github.com/danielhkuo/ballot-kiosk/models"
)

// Apply folds one scan result into the counters and returns the new value.
// The input is not modified.
func Apply(current models.VotingStats, result models.ScanResult, now time.Time) models.VotingStats {
	next := current
	next.TotalScans++

	switch result.Result {
	case models.ResultSuccess:
		next.Successful++
	case models.ResultError:
		next.Failed++
	case models.ResultInvalid:
		next.Invalid++
	}

	// Invalid ballots count as multiple selections too
	if result.Result == models.ResultInvalid || result.ErrorType == models.ErrorMultipleSelections {
		next.MultipleSelections++
	}

	switch result.ErrorType {
	case models.ErrorDamaged:
		next.Damaged++
	case models.ErrorUnreadable:
		next.Unreadable++
	}

	next.UpdatedAt = now
	return next
}

// Retry records a voter rescanning after an error. TotalScans is untouched.
func Retry(current models.VotingStats, now time.Time) models.VotingStats {
	next := current
	next.Retries++
	next.UpdatedAt = now
	return next
}

// Reset zeroes every counter but keeps the record's ID
func Reset(current models.VotingStats, now time.Time) models.VotingStats {
	return models.VotingStats{
		ID:        current.ID,
		UpdatedAt: now,
	}
}

// Merge applies a partial update on top of current
func Merge(current models.VotingStats, u models.StatsUpdate, now time.Time) models.VotingStats {
	next := current
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&next.TotalScans, u.TotalScans)
	set(&next.Successful, u.Successful)
	set(&next.Failed, u.Failed)
	set(&next.Invalid, u.Invalid)
	set(&next.Retries, u.Retries)
	set(&next.MultipleSelections, u.MultipleSelections)
	set(&next.Damaged, u.Damaged)
	set(&next.Unreadable, u.Unreadable)
	next.UpdatedAt = now
	return next
}

// Negative reports whether any counter in u is below zero
func Negative(u models.StatsUpdate) bool {
	for _, v := range []*int{
		u.TotalScans, u.Successful, u.Failed, u.Invalid,
		u.Retries, u.MultipleSelections, u.Damaged, u.Unreadable,
	} {
		if v != nil && *v < 0 {
			return true
		}
	}
	return false
}

// Consistent reports whether the outcome counters add up to TotalScans
func Consistent(s models.VotingStats) bool {
	return s.Successful+s.Failed+s.Invalid == s.TotalScans
}

// SuccessRate returns successful/total as a percentage with one decimal
func SuccessRate(s models.VotingStats) string {
	if s.TotalScans == 0 {
		return "0.0"
	}
	rate := float64(s.Successful) / float64(s.TotalScans) * 100
	return strconv.FormatFloat(rate, 'f', 1, 64)
}
