// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name     string
		pin      string
		expected string
		wantErr  error
	}{
		{"correct pin", "1234", "1234", nil},
		{"wrong pin", "4321", "1234", ErrInvalidPIN},
		{"too short", "123", "1234", ErrMalformedPIN},
		{"too long", "12345", "1234", ErrMalformedPIN},
		{"empty", "", "1234", ErrMalformedPIN},
		{"non-digit pin", "abcd", "abcd", nil},
		{"multibyte characters", "čćžš", "čćžš", nil},
		{"multibyte mismatch", "čćžš", "1234", ErrInvalidPIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePIN() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidPINFormat(t *testing.T) {
	if !ValidPINFormat("0000") {
		t.Error("0000 should be a valid PIN")
	}
	for _, pin := range []string{"", "1", "12345"} {
		if ValidPINFormat(pin) {
			t.Errorf("ValidPINFormat(%q) = true", pin)
		}
	}
}

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt(16)
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("GenerateSalt() length = %d, want 32", len(salt))
	}
	for _, c := range salt {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("GenerateSalt() contains invalid hex char: %c", c)
		}
	}

	other, _ := GenerateSalt(16)
	if salt == other {
		t.Error("GenerateSalt() produced duplicate salts (extremely unlikely)")
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334"},
		{"localhost", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, "ip-salt")
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			if hash != HashIP(tt.ip, "ip-salt") {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkValidatePIN(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ValidatePIN("1234", "1234")
	}
}
