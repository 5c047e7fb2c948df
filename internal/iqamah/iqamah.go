// Package iqamah derives congregation times from a computed schedule by
// adding a fixed delay to each prayer's athan.
package iqamah

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// ErrIncompletePolicy is returned when a policy lacks a delay for one of the
// five prayers or carries an invalid one.
var ErrIncompletePolicy = errors.New("incomplete iqamah policy")

// MaxDelay bounds a single delay. Anything longer is almost certainly a typo.
const MaxDelay = 180

// Policy maps each prayer to its iqamah delay in minutes. The zero Policy
// behaves as DefaultPolicy.
type Policy struct {
	minutes [len(prayertime.Kinds)]int
	set     bool
}

var defaultMinutes = map[prayertime.Kind]int{
	prayertime.Fajr:    20,
	prayertime.Dhuhr:   20,
	prayertime.Asr:     20,
	prayertime.Maghrib: 5,
	prayertime.Isha:    20,
}

// DefaultPolicy returns the usual mosque delays: 20 minutes for every
// prayer except Maghrib, which gets 5.
func DefaultPolicy() Policy {
	p, _ := NewPolicy(defaultMinutes)
	return p
}

// NewPolicy builds a policy from a complete prayer → minutes map. A Sunrise
// entry is rejected since Sunrise has no congregation.
func NewPolicy(delays map[prayertime.Kind]int) (Policy, error) {
	var p Policy
	var missing []string
	for _, k := range prayertime.Kinds {
		d, ok := delays[k]
		if !k.IsPrayer() {
			if ok {
				return Policy{}, fmt.Errorf("%w: sunrise takes no delay", ErrIncompletePolicy)
			}
			continue
		}
		if !ok {
			missing = append(missing, k.String())
			continue
		}
		if d < 0 || d > MaxDelay {
			return Policy{}, fmt.Errorf("%w: %s delay %d must be between 0 and %d minutes", ErrIncompletePolicy, k, d, MaxDelay)
		}
		p.minutes[k] = d
	}
	if len(missing) > 0 {
		return Policy{}, fmt.Errorf("%w: missing %s", ErrIncompletePolicy, strings.Join(missing, ", "))
	}
	p.set = true
	return p, nil
}

// ParsePolicy reads a comma-separated list such as "fajr=25,maghrib=10" and
// overlays it on the defaults. An empty string yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	named := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return Policy{}, fmt.Errorf("%w: %q is not prayer=minutes", ErrIncompletePolicy, part)
		}
		d, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Policy{}, fmt.Errorf("%w: %s delay %q is not a whole number of minutes", ErrIncompletePolicy, strings.TrimSpace(name), value)
		}
		named[name] = d
	}
	return Overlay(named)
}

// Overlay applies delays keyed by prayer name on top of the defaults.
func Overlay(named map[string]int) (Policy, error) {
	delays := make(map[prayertime.Kind]int, len(defaultMinutes))
	for k, d := range defaultMinutes {
		delays[k] = d
	}
	for name, d := range named {
		k, err := prayertime.ParseKind(name)
		if err != nil {
			return Policy{}, fmt.Errorf("%w: %v", ErrIncompletePolicy, err)
		}
		delays[k] = d
	}
	return NewPolicy(delays)
}

// Delay returns the delay for k. Sunrise always reports zero.
func (p Policy) Delay(k prayertime.Kind) time.Duration {
	if !p.set {
		p = DefaultPolicy()
	}
	if !k.IsPrayer() || int(k) >= len(p.minutes) {
		return 0
	}
	return time.Duration(p.minutes[k]) * time.Minute
}

// String renders the policy in the form ParsePolicy accepts.
func (p Policy) String() string {
	parts := make([]string, 0, len(prayertime.Kinds)-1)
	for _, k := range prayertime.Kinds {
		if !k.IsPrayer() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", strings.ToLower(k.String()), int(p.Delay(k)/time.Minute)))
	}
	return strings.Join(parts, ",")
}

// Apply returns a copy of s with every prayer's iqamah set to its athan plus
// the policy delay. Sunrise keeps a nil iqamah.
func Apply(s prayertime.Schedule, p Policy) prayertime.Schedule {
	out := s
	for i, e := range s.Events {
		if !e.Kind.IsPrayer() {
			e.Iqamah = nil
			out.Events[i] = e
			continue
		}
		iq := e.Athan.Add(p.Delay(e.Kind))
		e.Iqamah = &iq
		out.Events[i] = e
	}
	return out
}
