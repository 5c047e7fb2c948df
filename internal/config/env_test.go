package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range ValidKeys {
		name := EnvName(key)
		if v, ok := os.LookupEnv(name); ok {
			os.Unsetenv(name)
			t.Cleanup(func() { os.Setenv(name, v) })
		}
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("high_lat_rule"); got != "PRAYER_TIMES_HIGH_LAT_RULE" {
		t.Errorf("EnvName = %q", got)
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYER_TIMES_METHOD", "Karachi")
	t.Setenv("PRAYER_TIMES_LATITUDE", "24.8607")
	t.Setenv("PRAYER_TIMES_MADHAB", "hanafi")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Method != "Karachi" || cfg.Madhab != "hanafi" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Latitude == nil || *cfg.Latitude != 24.8607 {
		t.Errorf("Latitude = %v", cfg.Latitude)
	}
	if cfg.Longitude != nil {
		t.Errorf("Longitude = %v, want unset", *cfg.Longitude)
	}
}

func TestFromEnv_InvalidValueNamesVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYER_TIMES_LONGITUDE", "east")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error for invalid longitude")
	}
	if !strings.Contains(err.Error(), "PRAYER_TIMES_LONGITUDE") {
		t.Errorf("error should name the variable, got: %v", err)
	}
}

func TestResolve_Priority(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYER_TIMES_METHOD", "Egypt")

	file := &Config{Method: "ISNA", TimeFormat: "12h"}
	cfg, err := Resolve(file)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Method != "Egypt" {
		t.Errorf("Method = %q, want env to win over file", cfg.Method)
	}
	if cfg.TimeFormat != "12h" {
		t.Errorf("TimeFormat = %q, want file to win over default", cfg.TimeFormat)
	}
	if cfg.Madhab != "" {
		t.Errorf("Madhab = %q, want it left to the method", cfg.Madhab)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "PRAYER_TIMES_TIMEZONE=Europe/Istanbul\nPRAYER_TIMES_METHOD=Turkey\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Already-set variables win over the file.
	t.Setenv("PRAYER_TIMES_METHOD", "MuslimWorldLeague")
	t.Cleanup(func() { os.Unsetenv("PRAYER_TIMES_TIMEZONE") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if got := os.Getenv("PRAYER_TIMES_TIMEZONE"); got != "Europe/Istanbul" {
		t.Errorf("PRAYER_TIMES_TIMEZONE = %q", got)
	}
	if got := os.Getenv("PRAYER_TIMES_METHOD"); got != "MuslimWorldLeague" {
		t.Errorf("PRAYER_TIMES_METHOD = %q, want the pre-set value", got)
	}
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got: %v", err)
	}
}
