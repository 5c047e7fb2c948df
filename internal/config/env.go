package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override, e.g. PRAYER_TIMES_METHOD.
const EnvPrefix = "PRAYER_TIMES_"

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without replacing variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds a Config from PRAYER_TIMES_* variables. Values are
// validated exactly like `config set`.
func FromEnv() (*Config, error) {
	var cfg Config
	for _, key := range ValidKeys {
		name := EnvName(key)
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		if err := cfg.Set(key, v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return &cfg, nil
}

// Resolve returns defaults overlaid with the config file and then the
// environment. Flags are applied by the caller on top.
func Resolve(file *Config) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	cfg.Merge(file)
	cfg.Merge(env)
	return &cfg, nil
}
