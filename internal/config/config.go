package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/utils"
)

// Config holds user preferences that are not stored alongside the data.
type Config struct {
	// Storage
	DBPath     string `yaml:"db"`
	MaxBackups int    `yaml:"max_backups"`

	// Display
	Calendar      constants.Calendar `yaml:"calendar"`
	PersianDigits bool               `yaml:"persian_digits"`
	Currency      string             `yaml:"currency"`

	// Reports
	ReportDir   string `yaml:"report_dir"`
	FontRegular string `yaml:"font_regular"`
	FontBold    string `yaml:"font_bold"`

	Debug bool `yaml:"debug"`

	// path of the YAML file that was read, if any
	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:        constants.DefaultConfigPath,
		MaxBackups:    constants.MaxBackups,
		Calendar:      constants.CalendarJalali,
		PersianDigits: true,
		Currency:      constants.DefaultCurrency,
		ReportDir:     ".",
	}
}

// Load builds the configuration from defaults, a .env file in the working
// directory, the YAML config file and MOZD_* environment variables, in that
// order. An explicitly named config file must exist; the default one may not.
func Load(path string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("MOZD_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = constants.DefaultConfigFile
		}
	}

	path = ExpandPath(path)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.path = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()

	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.ReportDir = ExpandPath(cfg.ReportDir)
	cfg.FontRegular = ExpandPath(cfg.FontRegular)
	cfg.FontBold = ExpandPath(cfg.FontBold)

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DBPath = getEnv("MOZD_DB", c.DBPath)
	c.Debug = getEnvBool("MOZD_DEBUG", c.Debug)
	c.Calendar = constants.Calendar(getEnv("MOZD_CALENDAR", string(c.Calendar)))
	c.PersianDigits = getEnvBool("MOZD_PERSIAN_DIGITS", c.PersianDigits)
	c.Currency = getEnv("MOZD_CURRENCY", c.Currency)
	c.ReportDir = getEnv("MOZD_REPORT_DIR", c.ReportDir)
	c.FontRegular = getEnv("MOZD_FONT_REGULAR", c.FontRegular)
	c.FontBold = getEnv("MOZD_FONT_BOLD", c.FontBold)
	c.MaxBackups = getEnvInt("MOZD_MAX_BACKUPS", c.MaxBackups)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "database path cannot be empty")
	}

	switch c.Calendar {
	case constants.CalendarJalali, constants.CalendarGregorian:
	default:
		errs = append(errs, fmt.Sprintf("invalid calendar '%s': must be one of [jalali gregorian]", c.Calendar))
	}

	if c.MaxBackups < 1 {
		errs = append(errs, fmt.Sprintf("invalid max backups %d: must be at least 1", c.MaxBackups))
	} else if c.MaxBackups > 365 {
		errs = append(errs, fmt.Sprintf("invalid max backups %d: must be at most 365", c.MaxBackups))
	}

	for name, p := range map[string]string{"regular": c.FontRegular, "bold": c.FontBold} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			errs = append(errs, fmt.Sprintf("%s font file does not exist: %s", name, p))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Path returns the config file that was read, or "" when none was.
func (c *Config) Path() string {
	return c.path
}

// ConfigDir is the directory holding the database, logs, lockfile and backups.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.DBPath)
}

// NumberFormat returns the display format for amounts.
func (c *Config) NumberFormat() utils.NumberFormat {
	return utils.NumberFormat{PersianDigits: c.PersianDigits, CurrencyLabel: c.Currency}
}

// WriteDefault writes the built-in configuration to path unless a file is
// already there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
