// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth validates the kiosk admin PIN.

# Admin PIN

The admin panel is unlocked with a fixed 4-character PIN from the
configuration (default "1234"):

	err := auth.ValidatePIN(req.PIN, cfg.AdminPIN)
	switch {
	case errors.Is(err, auth.ErrMalformedPIN): // 400
	case errors.Is(err, auth.ErrInvalidPIN):   // 401
	}

Length is counted in characters, not bytes. The comparison uses hmac.Equal.

# IP Hashing

Failed attempts are logged with a salted hash of the client address instead
of the address itself:

	salt, _ := auth.GenerateSalt(16)
	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256. The salt is created
once per process, so hashes only correlate within one run.
*/
package auth
