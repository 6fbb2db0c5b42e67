// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scan

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/danielhkuo/ballot-kiosk/models"
)

// Outcome thresholds for an unforced scan: r < SuccessCutoff is a success,
// r < ErrorCutoff is an error, anything above is invalid.
const (
	SuccessCutoff = 0.70
	ErrorCutoff   = 0.90
)

const (
	ballotPrefix = "GM"

	minProcessingMs  = 500
	processingSpanMs = 500
)

// InvalidReason is shown on every invalid ballot
const InvalidReason = "Glasački listić sadrži više od jednog izbora i smatra se nevažećim"

var errorTypes = []string{
	models.ErrorMultipleSelections,
	models.ErrorDamaged,
	models.ErrorUnreadable,
}

var errorMessages = map[string]string{
	models.ErrorMultipleSelections: "Detektirano više od jednog izbora na glasačkom listiću",
	models.ErrorDamaged:            "Glasački listić je oštećen ili nečitak",
	models.ErrorUnreadable:         "Nije moguće pročitati glasački listić",
}

// Source is the randomness behind a scan. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a seeded PCG source, for reproducible runs
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Locked makes src safe for concurrent callers
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Generate produces one scan result. A forced outcome skips the weighted
// draw; the caller is responsible for clearing it afterwards.
func Generate(forced models.ForcedOutcome, src Source, now time.Time) models.ScanResult {
	switch forced {
	case models.ForceSuccess:
		return success(src, now)
	case models.ForceError:
		return failure(src, now)
	}

	r := src.Float64()
	switch {
	case r < SuccessCutoff:
		return success(src, now)
	case r < ErrorCutoff:
		return failure(src, now)
	default:
		return invalid(src, now)
	}
}

// CanRetry reports whether the voter may rescan after an error of this type.
// Multiple selections cannot be fixed by reinserting the same ballot.
func CanRetry(errorType string) bool {
	return errorType != models.ErrorMultipleSelections
}

// BallotNumber formats a ballot identifier: prefix plus six zero-padded digits
func BallotNumber(src Source) string {
	return fmt.Sprintf("%s-%06d", ballotPrefix, src.IntN(1_000_000))
}

func success(src Source, now time.Time) models.ScanResult {
	res := base(models.ResultSuccess, src, now)
	res.BallotNumber = BallotNumber(src)
	return res
}

func failure(src Source, now time.Time) models.ScanResult {
	errorType := errorTypes[src.IntN(len(errorTypes))]
	canRetry := CanRetry(errorType)

	res := base(models.ResultError, src, now)
	res.ErrorType = errorType
	res.ErrorMessage = errorMessages[errorType]
	res.CanRetry = &canRetry
	return res
}

func invalid(src Source, now time.Time) models.ScanResult {
	canAccept := false

	res := base(models.ResultInvalid, src, now)
	res.Reason = InvalidReason
	res.CanAccept = &canAccept
	return res
}

func base(result string, src Source, now time.Time) models.ScanResult {
	return models.ScanResult{
		ID:               now.UnixMilli(),
		Result:           result,
		Timestamp:        now,
		ProcessingTimeMs: minProcessingMs + src.IntN(processingSpanMs),
	}
}
