// Package cache memoises computed schedules and detected locations.
//
// Schedules are a pure function of their inputs, so entries never expire;
// the key covers every input that affects the result. Geolocation entries
// are trusted for 24 hours. Nothing in the program depends on a hit.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/geo"
)

const (
	scheduleKeyPrefix = "timings_"
	geoKey            = "geolocation"
	geoTTL            = 24 * time.Hour
)

// Store is a byte-oriented key/value backend. Get reports ok=false on a
// miss. ttl of zero means no expiry.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores schedules and geolocation results in a Store.
type Cache struct {
	store Store
	now   func() time.Time
}

// ScheduleKey identifies one computed day.
type ScheduleKey struct {
	Date      string // YYYY-MM-DD
	Latitude  float64
	Longitude float64
	Timezone  string
	Method    string // method.CalculationMethod.Fingerprint()
	Iqamah    string // iqamah.Policy.String()
}

// String hashes the key into a short, filename-safe token.
func (k ScheduleKey) String() string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%s", k.Date, k.Latitude, k.Longitude, k.Timezone, k.Method, k.Iqamah)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

type geoEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// NewWithStore wraps an existing store.
func NewWithStore(s Store) *Cache {
	return &Cache{store: s, now: time.Now}
}

// LoadSchedule returns the cached response for key, or nil on a miss or a
// damaged entry.
func (c *Cache) LoadSchedule(ctx context.Context, key ScheduleKey) *api.Response {
	data, ok, err := c.store.Get(ctx, scheduleKeyPrefix+key.String())
	if err != nil {
		log.Debug().Err(err).Str("date", key.Date).Msg("schedule cache read failed")
		return nil
	}
	if !ok {
		log.Debug().Str("date", key.Date).Msg("schedule cache miss")
		return nil
	}

	var resp api.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Debug().Err(err).Str("date", key.Date).Msg("ignoring corrupt schedule cache entry")
		return nil
	}
	// A hash collision or hand-edited file must not leak another day.
	if resp.Date != key.Date || resp.Validate() != nil {
		return nil
	}
	log.Debug().Str("date", key.Date).Msg("schedule cache hit")
	return &resp
}

// SaveSchedule stores resp under key.
func (c *Cache) SaveSchedule(ctx context.Context, key ScheduleKey, resp *api.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.store.Set(ctx, scheduleKeyPrefix+key.String(), data, 0); err != nil {
		return fmt.Errorf("failed to write schedule cache: %w", err)
	}
	return nil
}

// LoadGeo returns a cached geolocation younger than 24 hours.
func (c *Cache) LoadGeo(ctx context.Context) *geo.Location {
	data, ok, err := c.store.Get(ctx, geoKey)
	if err != nil || !ok {
		return nil
	}

	var entry geoEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	if c.now().Sub(entry.CachedAt) > geoTTL {
		return nil
	}
	return &entry.Location
}

// SaveGeo stores a geolocation result.
func (c *Cache) SaveGeo(ctx context.Context, loc *geo.Location) error {
	data, err := json.Marshal(geoEntry{Location: *loc, CachedAt: c.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}
	if err := c.store.Set(ctx, geoKey, data, geoTTL); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}
	return nil
}
