// Package api is the boundary between callers and the prayer time engine:
// it resolves a Request into engine inputs and returns a Response.
package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/iqamah"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// Client computes schedules locally. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	// Registry resolves method names. Defaults to the built-in presets.
	Registry *method.Registry
}

// NewClient creates a client backed by the built-in method presets.
func NewClient() *Client {
	return &Client{Registry: method.Default()}
}

// Resolved holds a Request after parsing and validation.
type Resolved struct {
	Date     prayertime.Date
	Coord    prayertime.Coordinate
	Method   method.CalculationMethod
	Location *time.Location
	Policy   iqamah.Policy
}

// Resolve parses and validates every field of req.
func (c *Client) Resolve(req Request) (Resolved, error) {
	var r Resolved
	var err error

	if r.Date, err = prayertime.ParseDate(req.Date); err != nil {
		return Resolved{}, err
	}
	if r.Coord, err = prayertime.NewCoordinate(req.Latitude, req.Longitude); err != nil {
		return Resolved{}, err
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		return Resolved{}, fmt.Errorf("%w: time zone is required", prayertime.ErrInvalidTimeZone)
	}
	if r.Location, err = time.LoadLocation(tz); err != nil {
		return Resolved{}, fmt.Errorf("%w: %q: %v", prayertime.ErrInvalidTimeZone, tz, err)
	}

	registry := c.Registry
	if registry == nil {
		registry = method.Default()
	}
	if r.Method, err = registry.Lookup(req.Method); err != nil {
		return Resolved{}, err
	}
	if req.Madhab != "" {
		f, err := method.ParseMadhab(req.Madhab)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %v", prayertime.ErrInvalidMethod, err)
		}
		r.Method = r.Method.WithAsrFactor(f)
	}
	if req.HighLatitudeRule != "" {
		rule, err := method.ParseHighLatitudeRule(req.HighLatitudeRule)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %v", prayertime.ErrInvalidMethod, err)
		}
		r.Method = r.Method.WithHighLatitudeRule(rule)
	}

	if r.Policy, err = iqamah.Overlay(req.Iqamah); err != nil {
		return Resolved{}, err
	}
	return r, nil
}

// Timings computes the schedule for the single date in req.
func (c *Client) Timings(req Request) (*Response, error) {
	r, err := c.Resolve(req)
	if err != nil {
		return nil, err
	}
	return c.compute(r)
}

// Calendar computes days consecutive schedules starting at req.Date by
// running the single-date computation once per day.
func (c *Client) Calendar(req Request, days int) ([]Response, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	r, err := c.Resolve(req)
	if err != nil {
		return nil, err
	}

	out := make([]Response, 0, days)
	start := r.Date
	for i := 0; i < days; i++ {
		r.Date = start.AddDays(i)
		resp, err := c.compute(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (c *Client) compute(r Resolved) (*Response, error) {
	s, err := prayertime.ComputeIn(r.Date, r.Coord, r.Method, r.Location)
	if err != nil {
		return nil, err
	}
	for _, e := range s.Events {
		if e.Adjusted {
			log.Debug().
				Str("date", r.Date.String()).
				Str("prayer", e.Kind.String()).
				Str("rule", r.Method.HighLatRule.String()).
				Msg("high latitude rule applied")
		}
	}

	s = iqamah.Apply(s, r.Policy)
	resp := FromSchedule(s, r.Location.String())
	return &resp, nil
}
