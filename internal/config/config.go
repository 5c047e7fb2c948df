// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant) and may be overridden by PRAYER_TIMES_* environment
// variables, optionally loaded from a .env file. The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/iqamah"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"
)

// Default values applied when nothing else sets them. Madhab and the high
// latitude rule are left to the selected method when unset; every built-in
// preset uses DefaultMadhab and DefaultHighLatRule.
const (
	DefaultMethod      = method.MuslimWorldLeague
	DefaultMadhab      = "shafi"
	DefaultHighLatRule = "angle-based"
	DefaultTimeFormat  = "24h"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "timezone",
	"method", "madhab", "high_lat_rule",
	"iqamah",
	"time_format",
	"prayers",
	"cache_dir",
	"methods_file",
	"redis_addr",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	// Pointers so the equator and the prime meridian can be stored.
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Timezone    string   `json:"timezone,omitempty"` // IANA name
	Method      string   `json:"method,omitempty"`
	Madhab      string   `json:"madhab,omitempty"`        // "shafi" or "hanafi"
	HighLatRule string   `json:"high_lat_rule,omitempty"` // see method.ParseHighLatitudeRule
	Iqamah      string   `json:"iqamah,omitempty"`        // "fajr=20,maghrib=5,..."
	TimeFormat  string   `json:"time_format,omitempty"`   // "12h" or "24h"
	Prayers     string   `json:"prayers,omitempty"`       // comma-separated list
	CacheDir    string   `json:"cache_dir,omitempty"`
	MethodsFile string   `json:"methods_file,omitempty"` // YAML file of custom methods
	RedisAddr   string   `json:"redis_addr,omitempty"`   // host:port; empty uses the file cache
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     DefaultMethod,
		TimeFormat: DefaultTimeFormat,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// Method names are not checked here since custom methods may come from a
// methods file that is only read at run time.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := parseBounded("latitude", value, 90)
		if err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseBounded("longitude", value, 180)
		if err != nil {
			return err
		}
		c.Longitude = &v
	case "timezone":
		if value == "" || value == "Local" {
			return fmt.Errorf("invalid timezone %q: must be an IANA name such as Europe/London", value)
		}
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
		c.Timezone = value
	case "method":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid method %q: must not be empty", value)
		}
		c.Method = value
	case "madhab":
		f, err := method.ParseMadhab(value)
		if err != nil {
			return err
		}
		c.Madhab = f.String()
	case "high_lat_rule":
		r, err := method.ParseHighLatitudeRule(value)
		if err != nil {
			return err
		}
		c.HighLatRule = r.String()
	case "iqamah":
		p, err := iqamah.ParsePolicy(value)
		if err != nil {
			return err
		}
		c.Iqamah = p.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		for _, n := range strings.Split(value, ",") {
			if _, err := prayertime.ParseKind(n); err != nil {
				return fmt.Errorf("invalid prayer name %q in prayers list", strings.TrimSpace(n))
			}
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	case "methods_file":
		c.MethodsFile = value
	case "redis_addr":
		c.RedisAddr = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return formatOptional(c.Latitude), nil
	case "longitude":
		return formatOptional(c.Longitude), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "high_lat_rule":
		return c.HighLatRule, nil
	case "iqamah":
		return c.Iqamah, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "methods_file":
		return c.MethodsFile, nil
	case "redis_addr":
		return c.RedisAddr, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Merge copies every field set in o over c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.Latitude != nil {
		c.Latitude = o.Latitude
	}
	if o.Longitude != nil {
		c.Longitude = o.Longitude
	}
	for _, key := range ValidKeys {
		if key == "latitude" || key == "longitude" {
			continue
		}
		if v, _ := o.Get(key); v != "" {
			c.setRaw(key, v)
		}
	}
}

// HasLocation reports whether both coordinates are set.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// setRaw assigns an already validated string value.
func (c *Config) setRaw(key, v string) {
	switch key {
	case "timezone":
		c.Timezone = v
	case "method":
		c.Method = v
	case "madhab":
		c.Madhab = v
	case "high_lat_rule":
		c.HighLatRule = v
	case "iqamah":
		c.Iqamah = v
	case "time_format":
		c.TimeFormat = v
	case "prayers":
		c.Prayers = v
	case "cache_dir":
		c.CacheDir = v
	case "methods_file":
		c.MethodsFile = v
	case "redis_addr":
		c.RedisAddr = v
	}
}

func parseBounded(name, value string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, value)
	}
	if math.IsNaN(v) || v < -limit || v > limit {
		return 0, fmt.Errorf("invalid %s %q: must be between %g and %g", name, value, -limit, limit)
	}
	return v, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
