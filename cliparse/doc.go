// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are layered, highest precedence first:

 1. command-line flags (only those actually given)
 2. environment variables, after loading .env with godotenv
 3. the YAML config file (-c or KIOSK_CONFIG)
 4. Default()

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: memory, sqlite or postgres (default: memory)
  - DatabaseURL: SQLite path or PostgreSQL URL (required unless memory)
  - AdminPIN: 4-character admin panel PIN (default: 1234)
  - PINRate, PINBurst: PIN attempt budget per client IP
  - ScanDelay: artificial delay of POST /api/scan (default: 3.5s)
  - Municipality, LocationNumber: seeded location (default: Centar/1234)
  - Kiosk: screen timers (inactivity, success_dismiss, tap_window, ...)
  - Log: level, format, rotated log file

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-pin           Admin PIN
	-scan-delay    Scan endpoint delay
	-municipality  Default municipality
	-location      Default polling station number
	-c             YAML config file
	-env-file      Environment file (default .env)
	-log-level     debug, info, warn, error
	-log-format    text or json
	-log-file      Rotated log file

# Environment Variables

	PORT, DATABASE_TYPE, DATABASE_URL, ADMIN_PIN, SCAN_DELAY,
	KIOSK_MUNICIPALITY, KIOSK_LOCATION_NUMBER, KIOSK_CONFIG,
	LOG_LEVEL, LOG_FORMAT, LOG_FILE

Values already in the environment are not overwritten by .env.

# Config File

	port: 5000
	database_type: sqlite
	database_url: kiosk.db
	scan_delay: 3.5s
	kiosk:
	  inactivity: 30s
	  success_dismiss: 10s
	log:
	  level: info
	  format: json
	  file: /var/log/ballot-kiosk.log

# Reloading

Reload parses the original arguments again. main uses it when the config
file changes to pick up a new log level without a restart:

	next, err := cfg.Reload()
*/
package cliparse
