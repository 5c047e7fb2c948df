package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/cache"
	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/geo"
	"github.com/smokyabdulrahman/prayer-engine/internal/iqamah"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// place is the resolved location a command computes for.
type place struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Label     string
	loc       *time.Location
}

// session bundles everything a schedule command needs.
type session struct {
	cfg     *config.Config
	client  *api.Client
	cache   *cache.Cache // nil when caching is unavailable
	place   place
	prayers []string
	layout  string
	iqamah  map[string]int
}

// newSession resolves the method catalogue, cache and location from the
// effective config.
func (a *app) newSession(ctx context.Context) (*session, error) {
	cfg := a.cfg

	prayers, err := prayer.ParseNames(cfg.Prayers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := iqamah.ParsePolicy(cfg.Iqamah)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		client:  client,
		cache:   openCache(ctx, cfg),
		prayers: prayers,
		layout:  prayer.TimeLayout(cfg.TimeFormat),
		iqamah:  policyMap(policy),
	}
	if s.place, err = resolvePlace(ctx, cfg, s.cache); err != nil {
		return nil, err
	}
	return s, nil
}

// newClient returns an engine client whose catalogue includes the methods
// file, if one is configured.
func newClient(cfg *config.Config) (*api.Client, error) {
	client := api.NewClient()
	if cfg.MethodsFile == "" {
		return client, nil
	}
	custom, err := method.LoadFile(cfg.MethodsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	client.Registry = method.Default().With(custom...)
	log.Debug().Str("file", cfg.MethodsFile).Int("methods", len(custom)).Msg("loaded custom methods")
	return client, nil
}

// openCache picks redis when an address is configured and the file cache
// otherwise. Failures only disable caching.
func openCache(ctx context.Context, cfg *config.Config) *cache.Cache {
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedis(ctx, cfg.RedisAddr)
		if err == nil {
			return c
		}
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using file cache")
	}
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	return c
}

// resolvePlace determines the location.
// Priority: flags and environment > config > cached geolocation > IP lookup.
func resolvePlace(ctx context.Context, cfg *config.Config, c *cache.Cache) (place, error) {
	var p place

	switch {
	case cfg.HasLocation():
		p = place{
			Latitude:  *cfg.Latitude,
			Longitude: *cfg.Longitude,
			Timezone:  cfg.Timezone,
			Label:     fmt.Sprintf("%.4f, %.4f", *cfg.Latitude, *cfg.Longitude),
		}
	case cfg.Latitude != nil || cfg.Longitude != nil:
		return place{}, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidInput)
	default:
		detected, err := detect(ctx, c)
		if err != nil {
			return place{}, err
		}
		p = place{
			Latitude:  detected.Latitude,
			Longitude: detected.Longitude,
			Timezone:  detected.Timezone,
			Label:     detected.Label(),
		}
		if cfg.Timezone != "" {
			p.Timezone = cfg.Timezone
		}
	}

	if p.Timezone == "" {
		p.Timezone = "Local"
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return place{}, fmt.Errorf("%w: %q: %v", prayertime.ErrInvalidTimeZone, p.Timezone, err)
	}
	p.loc = loc
	return p, nil
}

func detect(ctx context.Context, c *cache.Cache) (*geo.Location, error) {
	if c != nil {
		if cached := c.LoadGeo(ctx); cached != nil {
			log.Debug().Str("location", cached.Label()).Msg("using cached geolocation")
			return cached, nil
		}
	}

	detected, err := geo.DetectLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}
	if c != nil {
		if err := c.SaveGeo(ctx, detected); err != nil {
			log.Debug().Err(err).Msg("failed to cache geolocation")
		}
	}
	return detected, nil
}

func policyMap(p iqamah.Policy) map[string]int {
	m := make(map[string]int, len(prayertime.Kinds))
	for _, k := range prayertime.Kinds {
		if k.IsPrayer() {
			m[k.String()] = int(p.Delay(k) / time.Minute)
		}
	}
	return m
}

// now returns the current time in the location's zone.
func (s *session) now() time.Time {
	return timeNow().In(s.place.loc)
}

// startDate returns the --date value, or today in the location's zone.
func (s *session) startDate(flag string) (prayertime.Date, error) {
	if flag == "" {
		return prayertime.DateOf(s.now()), nil
	}
	return prayertime.ParseDate(flag)
}

func (s *session) request(d prayertime.Date) api.Request {
	return api.Request{
		Date:             d.String(),
		Latitude:         s.place.Latitude,
		Longitude:        s.place.Longitude,
		Timezone:         s.place.Timezone,
		Method:           s.cfg.Method,
		Madhab:           s.cfg.Madhab,
		HighLatitudeRule: s.cfg.HighLatRule,
		Iqamah:           s.iqamah,
	}
}

// day returns the schedule for d, from the cache when possible.
func (s *session) day(ctx context.Context, d prayertime.Date) (*api.Response, error) {
	req := s.request(d)
	if s.cache == nil {
		return s.client.Timings(req)
	}

	r, err := s.client.Resolve(req)
	if err != nil {
		return nil, err
	}
	key := cache.ScheduleKey{
		Date:      req.Date,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
		Method:    r.Method.Fingerprint(),
		Iqamah:    r.Policy.String(),
	}
	if resp := s.cache.LoadSchedule(ctx, key); resp != nil {
		return resp, nil
	}

	resp, err := s.client.Timings(req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SaveSchedule(ctx, key, resp); err != nil {
		log.Debug().Err(err).Str("date", req.Date).Msg("failed to cache schedule")
	}
	return resp, nil
}

// days returns n consecutive schedules starting at start.
func (s *session) days(ctx context.Context, start prayertime.Date, n int) ([]api.Response, error) {
	if s.cache == nil {
		return s.client.Calendar(s.request(start), n)
	}
	out := make([]api.Response, 0, n)
	for i := 0; i < n; i++ {
		resp, err := s.day(ctx, start.AddDays(i))
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// athan formats a prayer time, marking times moved to the neighbouring day
// and times produced by a high latitude rule.
func (s *session) athan(t time.Time, date string, adjusted bool) string {
	out := t.Format(s.layout)
	if d := t.Format(time.DateOnly); d < date {
		out += " (-1d)"
	} else if d > date {
		out += " (+1d)"
	}
	if adjusted {
		out += "*"
	}
	return out
}

func adjustedNote(resp *api.Response) string {
	return fmt.Sprintf("* estimated with the %s high latitude rule", resp.Method.HighLatitudeRule)
}
