package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/hijri"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// Request is the single-date input accepted from callers.
type Request struct {
	Date             string         `json:"date"` // YYYY-MM-DD
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	Timezone         string         `json:"timezone"` // IANA name, e.g. "Europe/London"
	Method           string         `json:"method"`
	Madhab           string         `json:"madhab,omitempty"`
	HighLatitudeRule string         `json:"high_latitude_rule,omitempty"`
	Iqamah           map[string]int `json:"iqamah,omitempty"` // prayer name → delay minutes
}

// Response is one day's schedule as returned to callers.
type Response struct {
	Date     string     `json:"date"` // YYYY-MM-DD, echoes the request
	Hijri    string     `json:"hijri,omitempty"`
	Location Location   `json:"location"`
	Method   MethodInfo `json:"method"`
	Prayers  []Prayer   `json:"prayers"`
}

// Location describes where the schedule was computed.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// MethodInfo records the parameters used, so a response is self-describing
// even for custom methods.
type MethodInfo struct {
	Name             string  `json:"name"`
	FajrAngle        float64 `json:"fajr_angle"`
	IshaAngle        float64 `json:"isha_angle,omitempty"`
	IshaInterval     int     `json:"isha_interval,omitempty"`
	Madhab           string  `json:"madhab"`
	HighLatitudeRule string  `json:"high_latitude_rule"`
}

// Prayer is one event. Times are RFC 3339 local times carrying the zone
// offset. Iqamah is omitted for Sunrise.
type Prayer struct {
	Name      string     `json:"name"`
	Athan     time.Time  `json:"athan"`
	Iqamah    *time.Time `json:"iqamah,omitempty"`
	DayOffset int        `json:"day_offset,omitempty"`
	Adjusted  bool       `json:"adjusted,omitempty"`
}

// FromSchedule converts an engine schedule into its wire form. tz is the
// zone name to report.
func FromSchedule(s prayertime.Schedule, tz string) Response {
	h := hijri.FromGregorian(s.Date.Year, s.Date.Month, s.Date.Day)

	resp := Response{
		Date:  s.Date.String(),
		Hijri: h.Format(),
		Location: Location{
			Latitude:  s.Coordinate.Latitude,
			Longitude: s.Coordinate.Longitude,
			Timezone:  tz,
		},
		Method:  MethodInfoOf(s.Method),
		Prayers: make([]Prayer, 0, len(s.Events)),
	}

	for _, e := range s.Events {
		resp.Prayers = append(resp.Prayers, Prayer{
			Name:      e.Kind.String(),
			Athan:     e.Athan,
			Iqamah:    e.Iqamah,
			DayOffset: e.DayOffset,
			Adjusted:  e.Adjusted,
		})
	}
	return resp
}

// MethodInfoOf describes m on the wire.
func MethodInfoOf(m method.CalculationMethod) MethodInfo {
	return MethodInfo{
		Name:             m.Name,
		FajrAngle:        m.FajrAngle,
		IshaAngle:        m.IshaAngle,
		IshaInterval:     m.IshaInterval,
		Madhab:           m.AsrFactor.String(),
		HighLatitudeRule: m.HighLatRule.String(),
	}
}

// ErrMalformedResponse is returned by Validate and Decode.
var ErrMalformedResponse = errors.New("malformed schedule response")

// Validate checks that the response lists the six events once each, in
// canonical order, with strictly increasing athan times.
func (r Response) Validate() error {
	if _, err := prayertime.ParseDate(r.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(r.Prayers) != len(prayertime.Kinds) {
		return fmt.Errorf("%w: %d prayers, want %d", ErrMalformedResponse, len(r.Prayers), len(prayertime.Kinds))
	}

	for i, p := range r.Prayers {
		k := prayertime.Kinds[i]
		if p.Name != k.String() {
			return fmt.Errorf("%w: entry %d is %q, want %s", ErrMalformedResponse, i, p.Name, k)
		}
		if p.Athan.IsZero() {
			return fmt.Errorf("%w: %s has no athan", ErrMalformedResponse, k)
		}
		if !k.IsPrayer() && p.Iqamah != nil {
			return fmt.Errorf("%w: %s must not have an iqamah", ErrMalformedResponse, k)
		}
		if p.Iqamah != nil && p.Iqamah.Before(p.Athan) {
			return fmt.Errorf("%w: %s iqamah precedes athan", ErrMalformedResponse, k)
		}
		if i > 0 && !p.Athan.After(r.Prayers[i-1].Athan) {
			return fmt.Errorf("%w: %s is not after %s", ErrMalformedResponse, k, r.Prayers[i-1].Name)
		}
	}
	return nil
}

// Find returns the entry named name, ignoring case.
func (r Response) Find(name string) (Prayer, bool) {
	k, err := prayertime.ParseKind(name)
	if err != nil {
		return Prayer{}, false
	}
	for _, p := range r.Prayers {
		if p.Name == k.String() {
			return p, true
		}
	}
	return Prayer{}, false
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// Decode reads and validates a single Response.
func Decode(r io.Reader) (*Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}
