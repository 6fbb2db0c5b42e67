// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the kiosk API.

# Domain Types

  - Screen: the seven kiosk views (welcome, instructions, scanner, scanning,
    success, error, invalid)
  - ScanResult: outcome of a simulated scan, tagged on Result
  - VotingStats: aggregate scan counters
  - VotingLocation: municipality and polling-station number
  - ForcedOutcome: admin override for the next scan
  - KioskState: snapshot of the screen controller

# ScanResult Variants

Only the fields of the active variant are set:

	success: ballotNumber
	error:   errorType, errorMessage, canRetry
	invalid: reason, canAccept

All variants carry id, timestamp and processingTimeMs.

# Request Types

  - StatsUpdate: partial counter merge (nil fields untouched)
  - UpdateLocationRequest: municipality, locationNumber
  - AdminAuthRequest: pin
  - ScanRequest: forceResult ("success" or "error")

# Response Types

  - AdminAuthResponse: authenticated, error
  - StatsSummary: stats, successRate, updatedAgo
  - ErrorResponse: error, message

# Constants

Scan results:

	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"

Error subtypes:

	ErrorMultipleSelections = "multiple_selections"
	ErrorDamaged            = "damaged"
	ErrorUnreadable         = "unreadable"
*/
package models
