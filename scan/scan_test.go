// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scan

import (
	"regexp"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-kiosk/models"
)

// fixedSource replays canned values; exhausted queues return zero
type fixedSource struct {
	floats []float64
	ints   []int
}

func (s *fixedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *fixedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

var ballotPattern = regexp.MustCompile(`^GM-\d{6}$`)

func TestGenerate_WeightedDraw(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    float64
		want string
	}{
		{"zero is success", 0.0, models.ResultSuccess},
		{"mid success", 0.5, models.ResultSuccess},
		{"success boundary is error", 0.70, models.ResultError},
		{"mid error", 0.8, models.ResultError},
		{"error boundary is invalid", 0.90, models.ResultInvalid},
		{"high invalid", 0.95, models.ResultInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(models.ForceNone, &fixedSource{floats: []float64{tt.r}}, now)
			if res.Result != tt.want {
				t.Errorf("Generate() result = %q, want %q", res.Result, tt.want)
			}
			if !res.Timestamp.Equal(now) {
				t.Errorf("Generate() timestamp = %v, want %v", res.Timestamp, now)
			}
			if res.ID != now.UnixMilli() {
				t.Errorf("Generate() id = %d, want %d", res.ID, now.UnixMilli())
			}
		})
	}
}

func TestGenerate_Forced(t *testing.T) {
	src := NewSource(42)
	for i := 0; i < 200; i++ {
		if res := Generate(models.ForceSuccess, src, time.Now()); res.Result != models.ResultSuccess {
			t.Fatalf("forced success produced %q", res.Result)
		}
		if res := Generate(models.ForceError, src, time.Now()); res.Result != models.ResultError {
			t.Fatalf("forced error produced %q", res.Result)
		}
	}
}

func TestGenerate_ForcedDoesNotDrawFloat(t *testing.T) {
	// A forced scan must ignore the weighted draw entirely
	src := &fixedSource{floats: []float64{0.99}}
	res := Generate(models.ForceSuccess, src, time.Now())
	if res.Result != models.ResultSuccess {
		t.Fatalf("Generate() result = %q, want success", res.Result)
	}
	if len(src.floats) != 1 {
		t.Error("forced scan consumed the outcome draw")
	}
}

func TestGenerate_VariantFields(t *testing.T) {
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		res := Generate(models.ForceSuccess, &fixedSource{ints: []int{123, 4217}}, now)
		if res.BallotNumber != "GM-004217" {
			t.Errorf("BallotNumber = %q, want GM-004217", res.BallotNumber)
		}
		if res.ProcessingTimeMs != 623 {
			t.Errorf("ProcessingTimeMs = %d, want 623", res.ProcessingTimeMs)
		}
		if res.ErrorType != "" || res.CanRetry != nil || res.Reason != "" || res.CanAccept != nil {
			t.Errorf("success carries foreign fields: %+v", res)
		}
	})

	t.Run("error", func(t *testing.T) {
		res := Generate(models.ForceError, &fixedSource{ints: []int{1}}, now)
		if res.ErrorType != models.ErrorDamaged {
			t.Errorf("ErrorType = %q, want damaged", res.ErrorType)
		}
		if res.ErrorMessage == "" {
			t.Error("expected error message")
		}
		if res.BallotNumber != "" || res.Reason != "" || res.CanAccept != nil {
			t.Errorf("error carries foreign fields: %+v", res)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		res := Generate(models.ForceNone, &fixedSource{floats: []float64{0.95}}, now)
		if res.Reason != InvalidReason {
			t.Errorf("Reason = %q, want %q", res.Reason, InvalidReason)
		}
		if res.CanAccept == nil || *res.CanAccept {
			t.Error("invalid ballot must have canAccept=false")
		}
		if res.BallotNumber != "" || res.ErrorType != "" || res.CanRetry != nil {
			t.Errorf("invalid carries foreign fields: %+v", res)
		}
	})
}

func TestGenerate_CanRetryRule(t *testing.T) {
	tests := []struct {
		pick      int
		errorType string
		canRetry  bool
	}{
		{0, models.ErrorMultipleSelections, false},
		{1, models.ErrorDamaged, true},
		{2, models.ErrorUnreadable, true},
	}

	for _, tt := range tests {
		t.Run(tt.errorType, func(t *testing.T) {
			res := Generate(models.ForceError, &fixedSource{ints: []int{tt.pick}}, time.Now())
			if res.ErrorType != tt.errorType {
				t.Fatalf("ErrorType = %q, want %q", res.ErrorType, tt.errorType)
			}
			if res.CanRetry == nil || *res.CanRetry != tt.canRetry {
				t.Errorf("CanRetry = %v, want %v", res.CanRetry, tt.canRetry)
			}
		})
	}
}

func TestGenerate_RandomInvariants(t *testing.T) {
	src := NewSource(7)
	counts := map[string]int{}

	for i := 0; i < 5000; i++ {
		res := Generate(models.ForceNone, src, time.Now())
		counts[res.Result]++

		if res.ProcessingTimeMs < 500 || res.ProcessingTimeMs >= 1000 {
			t.Fatalf("ProcessingTimeMs = %d out of [500, 1000)", res.ProcessingTimeMs)
		}
		switch res.Result {
		case models.ResultSuccess:
			if !ballotPattern.MatchString(res.BallotNumber) {
				t.Fatalf("bad ballot number %q", res.BallotNumber)
			}
		case models.ResultError:
			if *res.CanRetry != CanRetry(res.ErrorType) {
				t.Fatalf("canRetry mismatch for %s", res.ErrorType)
			}
		}
	}

	// Loose bounds around 70/20/10
	if counts[models.ResultSuccess] < 3200 || counts[models.ResultSuccess] > 3800 {
		t.Errorf("success count %d far from 70%%", counts[models.ResultSuccess])
	}
	if counts[models.ResultInvalid] < 300 || counts[models.ResultInvalid] > 700 {
		t.Errorf("invalid count %d far from 10%%", counts[models.ResultInvalid])
	}
}

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(99), NewSource(99)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestLocked_ConcurrentGenerate(t *testing.T) {
	src := Locked(NewSource(7))
	done := make(chan models.ScanResult, 50)

	for i := 0; i < 50; i++ {
		go func() {
			done <- Generate(models.ForceNone, src, time.Now())
		}()
	}
	for i := 0; i < 50; i++ {
		res := <-done
		if res.Result == "" {
			t.Fatal("empty result from concurrent generate")
		}
	}
}
