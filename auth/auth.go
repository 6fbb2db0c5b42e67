// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// PINLength is the number of characters in the admin PIN
const PINLength = 4

var (
	ErrMalformedPIN = errors.New("PIN must be exactly 4 characters")
	ErrInvalidPIN   = errors.New("invalid PIN")
)

// ValidPINFormat reports whether pin has the right length
func ValidPINFormat(pin string) bool {
	return utf8.RuneCountInString(pin) == PINLength
}

// ValidatePIN checks a submitted PIN against the configured one.
// A PIN of the wrong length is ErrMalformedPIN; a mismatch is ErrInvalidPIN.
func ValidatePIN(pin, expected string) error {
	if !ValidPINFormat(pin) {
		return ErrMalformedPIN
	}
	if !hmac.Equal([]byte(pin), []byte(expected)) {
		return ErrInvalidPIN
	}
	return nil
}

// GenerateSalt creates a random hex string of byteLen bytes
func GenerateSalt(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address, so failed PIN attempts
// can be correlated in the logs without recording the address itself
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) are plenty for correlation
	return hex.EncodeToString(sum[:8])
}
