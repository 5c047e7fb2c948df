package prayertime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/method"
)

// Kind identifies one of the six daily events.
type Kind int

const (
	Fajr Kind = iota
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Kinds lists every event in canonical (chronological) order.
var Kinds = [...]Kind{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

var kindNames = [...]string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsPrayer reports whether the event is one of the five prayers.
// Sunrise is only a reference marker.
func (k Kind) IsPrayer() bool {
	return k != Sunrise
}

// ParseKind resolves a prayer name, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer %q; valid names: %s", s, strings.Join(kindNames[:], ", "))
}

// Date is a proleptic Gregorian calendar date with no time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const (
	minYear = 1
	maxYear = 9999
)

// NewDate validates and returns a Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD", kind: ErrInvalidDate}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Validate reports ErrInvalidDate for impossible or unsupported dates.
func (d Date) Validate() error {
	if d.Year < minYear || d.Year > maxYear {
		return &ValidationError{Field: "date", Value: d.String(), Reason: fmt.Sprintf("year must be between %d and %d", minYear, maxYear), kind: ErrInvalidDate}
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return &ValidationError{Field: "date", Value: d.String(), Reason: "no such calendar day", kind: ErrInvalidDate}
	}
	return nil
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Midnight returns 00:00 of the date in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinate validates and returns a Coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate reports ErrInvalidCoordinate when a component is out of range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return &ValidationError{Field: "latitude", Value: fmt.Sprint(c.Latitude), Reason: "must be between -90 and 90", kind: ErrInvalidCoordinate}
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return &ValidationError{Field: "longitude", Value: fmt.Sprint(c.Longitude), Reason: "must be between -180 and 180", kind: ErrInvalidCoordinate}
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Event is one entry of a Schedule.
type Event struct {
	Kind  Kind
	Athan time.Time
	// Iqamah is nil for Sunrise and until an iqamah policy is applied.
	Iqamah *time.Time
	// DayOffset is -1, 0 or +1 when the athan falls on the previous, same or
	// next calendar day relative to the schedule date.
	DayOffset int
	// Adjusted is set when a high latitude rule produced the time.
	Adjusted bool
}

// Schedule holds the six events of one date in canonical order.
type Schedule struct {
	Date       Date
	Coordinate Coordinate
	Method     method.CalculationMethod
	Events     [len(Kinds)]Event
}

// Event returns the entry for kind k.
func (s Schedule) Event(k Kind) Event {
	return s.Events[k]
}

// In returns a copy of s with every time expressed in loc. Day offsets are
// recomputed against the calendar of loc.
func (s Schedule) In(loc *time.Location) Schedule {
	out := s
	base := s.Date.Midnight(time.UTC)
	for i, e := range s.Events {
		e.Athan = e.Athan.In(loc)
		if e.Iqamah != nil {
			iq := e.Iqamah.In(loc)
			e.Iqamah = &iq
		}
		e.DayOffset = int(DateOf(e.Athan).Midnight(time.UTC).Sub(base).Hours() / 24)
		out.Events[i] = e
	}
	return out
}
