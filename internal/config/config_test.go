package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func floatPtr(v float64) *float64 { return &v }

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.Method != "MuslimWorldLeague" {
		t.Errorf("Defaults().Method = %q, want MuslimWorldLeague", d.Method)
	}
	// Left to the method.
	if d.Madhab != "" || d.HighLatRule != "" {
		t.Errorf("Defaults() madhab/rule = %q/%q, want unset", d.Madhab, d.HighLatRule)
	}
	if d.TimeFormat != "24h" {
		t.Errorf("Defaults().TimeFormat = %q, want %q", d.TimeFormat, "24h")
	}

	// Location is never defaulted.
	if d.Latitude != nil || d.Longitude != nil || d.Timezone != "" {
		t.Errorf("Defaults() location = %v, %v, %q; want unset", d.Latitude, d.Longitude, d.Timezone)
	}
	if d.HasLocation() {
		t.Error("Defaults().HasLocation() = true")
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", "prayer-times")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "prayer-times")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", "prayer-times", "config.json")
	if p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

// --- LoadFrom / SaveTo ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	cfg, err := LoadFrom("/no/such/file.json")
	if err != nil {
		t.Fatalf("LoadFrom non-existent should not error, got: %v", err)
	}
	if cfg.Method != "" || cfg.Latitude != nil {
		t.Errorf("LoadFrom non-existent should return empty config, got %+v", cfg)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	path := tempConfigPath(t)
	data := `{"latitude": 0, "longitude": 32.58, "timezone": "Africa/Kampala", "method": "Egypt", "madhab": "hanafi"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Latitude == nil || *cfg.Latitude != 0 {
		t.Errorf("Latitude = %v, want 0 (the equator is a real location)", cfg.Latitude)
	}
	if cfg.Longitude == nil || *cfg.Longitude != 32.58 {
		t.Errorf("Longitude = %v, want 32.58", cfg.Longitude)
	}
	if cfg.Method != "Egypt" || cfg.Madhab != "hanafi" || cfg.Timezone != "Africa/Kampala" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom with invalid JSON should return error")
	}
}

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	cfg := &Config{Method: "ISNA"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("config file should end with a newline")
	}
}

func TestResetAt(t *testing.T) {
	path := tempConfigPath(t)
	os.WriteFile(path, []byte("{}"), 0o644)

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be deleted")
	}
	if err := ResetAt(path); err != nil {
		t.Errorf("ResetAt on missing file should not error, got: %v", err)
	}
}

// --- Set ---

func TestSet_Valid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"latitude", "24.7136", "24.7136"},
		{"latitude", "0", "0"},
		{"longitude", "-86.1580556", "-86.1580556"},
		{"timezone", "America/Indiana/Indianapolis", "America/Indiana/Indianapolis"},
		{"method", "isna", "isna"},
		{"madhab", "Hanafi", "hanafi"},
		{"madhab", "1", "shafi"},
		{"high_lat_rule", "OneSeventh", "one-seventh"},
		{"iqamah", "maghrib=10", "fajr=20,dhuhr=20,asr=20,maghrib=10,isha=20"},
		{"time_format", "12h", "12h"},
		{"prayers", "Fajr,Dhuhr,Asr,Maghrib,Isha", "Fajr,Dhuhr,Asr,Maghrib,Isha"},
		{"cache_dir", "/tmp/cache", "/tmp/cache"},
		{"methods_file", "/etc/prayer-times/methods.yaml", "/etc/prayer-times/methods.yaml"},
		{"redis_addr", "localhost:6379", "localhost:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"latitude", "north"},
		{"latitude", "90.5"},
		{"latitude", "NaN"},
		{"longitude", "-181"},
		{"timezone", "Mars/Olympus"},
		{"timezone", ""},
		{"timezone", "Local"},
		{"method", "  "},
		{"madhab", "zahiri"},
		{"high_lat_rule", "sometimes"},
		{"iqamah", "fajr=soon"},
		{"time_format", "military"},
		{"prayers", "Fajr,Witr"},
		{"city", "London"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) should fail", tt.key, tt.value)
			}
		})
	}
}

// --- Get ---

func TestGet_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	for _, key := range ValidKeys {
		got, err := cfg.Get(key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
		if got != "" {
			t.Errorf("Get(%q) on empty config = %q, want empty", key, got)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.Get("school"); err == nil {
		t.Error("Get with unknown key should return error")
	}
}

// --- Merge ---

func TestMerge_OverridesOnlySetFields(t *testing.T) {
	base := Defaults()
	base.Latitude = floatPtr(51.5)
	base.Longitude = floatPtr(-0.12)

	base.Merge(&Config{Method: "ISNA", Latitude: floatPtr(0)})

	if base.Method != "ISNA" {
		t.Errorf("Method = %q, want ISNA", base.Method)
	}
	if *base.Latitude != 0 {
		t.Errorf("Latitude = %v, want 0", *base.Latitude)
	}
	if *base.Longitude != -0.12 {
		t.Errorf("Longitude = %v, want -0.12 (untouched)", *base.Longitude)
	}
	if base.TimeFormat != "24h" {
		t.Errorf("defaults lost: %+v", base)
	}

	base.Merge(nil)
	if base.Method != "ISNA" {
		t.Error("Merge(nil) changed the config")
	}
}

// --- JSON ---

func TestConfig_OmitEmpty_JSON(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "{}" {
		t.Errorf("empty config JSON = %s, want {}", got)
	}
}

func TestConfig_ZeroLatitudeKept(t *testing.T) {
	data, err := json.Marshal(&Config{Latitude: floatPtr(0)})
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["latitude"]; !ok {
		t.Error("latitude=0 should be present in JSON, but was omitted")
	}
}

// --- Full integration: Set -> SaveTo -> LoadFrom -> Get ---

func TestSetSaveLoadGet_Integration(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{}
	cfg.Set("latitude", "21.4225")
	cfg.Set("longitude", "39.8262")
	cfg.Set("timezone", "Asia/Riyadh")
	cfg.Set("method", "UmmAlQura")
	cfg.Set("time_format", "12h")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		key, want string
	}{
		{"latitude", "21.4225"},
		{"longitude", "39.8262"},
		{"timezone", "Asia/Riyadh"},
		{"method", "UmmAlQura"},
		{"time_format", "12h"},
	}
	for _, c := range checks {
		got, _ := loaded.Get(c.key)
		if got != c.want {
			t.Errorf("After save/load: Get(%q) = %q, want %q", c.key, got, c.want)
		}
	}
	if !loaded.HasLocation() {
		t.Error("HasLocation() = false after saving coordinates")
	}
}
