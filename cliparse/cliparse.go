package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/ballot-kiosk/auth"
	"github.com/danielhkuo/ballot-kiosk/db"
	"github.com/danielhkuo/ballot-kiosk/kiosk"
	"github.com/danielhkuo/ballot-kiosk/logging"
	"github.com/danielhkuo/ballot-kiosk/middleware"
)

type Config struct {
	Port           int            `yaml:"port"`
	DatabaseType   string         `yaml:"database_type"`
	DatabaseURL    string         `yaml:"database_url"`
	AdminPIN       string         `yaml:"admin_pin"`
	PINRate        time.Duration  `yaml:"pin_rate"`
	PINBurst       int            `yaml:"pin_burst"`
	ScanDelay      time.Duration  `yaml:"scan_delay"`
	Municipality   string         `yaml:"municipality"`
	LocationNumber string         `yaml:"location_number"`
	Kiosk          kiosk.Timings  `yaml:"kiosk"`
	Log            logging.Config `yaml:"log"`

	// ConfigPath is the YAML file the settings were read from, if any
	ConfigPath string `yaml:"-"`

	args []string
}

// Default returns the configuration used when nothing else is set
func Default() Config {
	return Config{
		Port:           5000,
		DatabaseType:   db.TypeMemory,
		AdminPIN:       "1234",
		PINRate:        middleware.DefaultPINRate,
		PINBurst:       middleware.DefaultPINBurst,
		ScanDelay:      3500 * time.Millisecond,
		Municipality:   "Centar",
		LocationNumber: "1234",
		Kiosk:          kiosk.DefaultTimings(),
		Log:            logging.DefaultConfig(),
	}
}

// ParseFlags builds the configuration. Precedence, highest first: flags,
// environment (after loading .env), the YAML config file, defaults.
func ParseFlags(args []string) (Config, error) {
	var (
		port                         int
		dbURL, dbType, pin, confPath string
		envFile, scanDelay           string
		municipality, location       string
		logLevel, logFormat, logFile string
	)

	fs := flag.NewFlagSet("ballot-kiosk", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL (SQLite path or PostgreSQL URL)")
	fs.StringVar(&dbType, "t", "", "Database type (memory, sqlite or postgres)")

	// Kiosk
	fs.StringVar(&pin, "pin", "", "Admin PIN, 4 characters (prefer env)")
	fs.StringVar(&scanDelay, "scan-delay", "", "Artificial delay of POST /api/scan, e.g. 3.5s")
	fs.StringVar(&municipality, "municipality", "", "Default municipality")
	fs.StringVar(&location, "location", "", "Default polling station number")

	// Files
	fs.StringVar(&confPath, "c", "", "YAML config file")
	fs.StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading env variables")

	// Logging
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&logFile, "log-file", "", "Also write logs to this file, rotated")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing .env is normal; a broken one is not
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if confPath == "" {
		confPath = os.Getenv("KIOSK_CONFIG")
	}

	cfg := Default()
	if confPath != "" {
		if err := cfg.loadFile(confPath); err != nil {
			return Config{}, err
		}
		cfg.ConfigPath = confPath
	}

	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}

	// Flags win over everything, but only the ones actually given
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = port
		case "d":
			cfg.DatabaseURL = dbURL
		case "t":
			cfg.DatabaseType = dbType
		case "pin":
			cfg.AdminPIN = pin
		case "scan-delay":
			d, err := time.ParseDuration(scanDelay)
			if err != nil {
				flagErr = fmt.Errorf("invalid -scan-delay: %w", err)
			}
			cfg.ScanDelay = d
		case "municipality":
			cfg.Municipality = municipality
		case "location":
			cfg.LocationNumber = location
		case "log-level":
			cfg.Log.Level = logLevel
		case "log-format":
			cfg.Log.Format = logFormat
		case "log-file":
			cfg.Log.File = logFile
		}
	})
	if flagErr != nil {
		return Config{}, flagErr
	}

	cfg.args = append([]string(nil), args...)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Reload parses the same arguments again, picking up config file edits
func (c Config) Reload() (Config, error) {
	return ParseFlags(c.args)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		c.Port = port
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		c.DatabaseType = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ADMIN_PIN"); v != "" {
		c.AdminPIN = v
	}
	if v := os.Getenv("SCAN_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("invalid SCAN_DELAY env variable")
		}
		c.ScanDelay = d
	}
	if v := os.Getenv("KIOSK_MUNICIPALITY"); v != "" {
		c.Municipality = v
	}
	if v := os.Getenv("KIOSK_LOCATION_NUMBER"); v != "" {
		c.LocationNumber = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	c.DatabaseType = strings.ToLower(c.DatabaseType)
	switch c.DatabaseType {
	case db.TypeMemory:
	case db.TypeSQLite, db.TypePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL required for %s (use -d or DATABASE_URL env)", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unknown database type %q", c.DatabaseType)
	}

	if !auth.ValidPINFormat(c.AdminPIN) {
		return fmt.Errorf("admin PIN must be exactly %d characters", auth.PINLength)
	}
	if c.ScanDelay < 0 {
		return errors.New("scan delay must not be negative")
	}
	if strings.TrimSpace(c.Municipality) == "" || strings.TrimSpace(c.LocationNumber) == "" {
		return errors.New("municipality and location number are required")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}
