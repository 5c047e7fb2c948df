package api

import (
	"errors"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// sampleRequest returns a valid request for London.
func sampleRequest() Request {
	return Request{
		Date:      "2026-02-28",
		Latitude:  51.5074,
		Longitude: -0.1278,
		Timezone:  "Europe/London",
		Method:    "ISNA",
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.Registry == nil {
		t.Error("Registry is nil")
	}
}

// ---------------------------------------------------------------------------
// Timings
// ---------------------------------------------------------------------------

func TestTimings_Success(t *testing.T) {
	resp, err := NewClient().Timings(sampleRequest())
	if err != nil {
		t.Fatalf("Timings returned error: %v", err)
	}

	if resp.Date != "2026-02-28" {
		t.Errorf("Date = %q, want %q", resp.Date, "2026-02-28")
	}
	if resp.Location.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q", resp.Location.Timezone)
	}
	if resp.Method.Name != method.ISNA || resp.Method.Madhab != "shafi" {
		t.Errorf("Method = %+v", resp.Method)
	}
	if resp.Hijri != "11 Ramadan 1447 AH" {
		t.Errorf("Hijri = %q", resp.Hijri)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	fajr, _ := resp.Find("fajr")
	if fajr.Iqamah == nil || fajr.Iqamah.Sub(fajr.Athan) != 20*time.Minute {
		t.Errorf("Fajr iqamah = %v, athan %v", fajr.Iqamah, fajr.Athan)
	}
	sunrise, _ := resp.Find("Sunrise")
	if sunrise.Iqamah != nil {
		t.Errorf("Sunrise iqamah = %v, want nil", sunrise.Iqamah)
	}
	if _, offset := fajr.Athan.Zone(); offset != 0 {
		t.Errorf("February London offset = %d, want 0", offset)
	}
}

func TestTimings_Overrides(t *testing.T) {
	req := sampleRequest()
	req.Madhab = "hanafi"
	req.Iqamah = map[string]int{"maghrib": 10}

	resp, err := NewClient().Timings(req)
	if err != nil {
		t.Fatalf("Timings returned error: %v", err)
	}
	if resp.Method.Madhab != "hanafi" {
		t.Errorf("Madhab = %q, want hanafi", resp.Method.Madhab)
	}

	base, err := NewClient().Timings(sampleRequest())
	if err != nil {
		t.Fatal(err)
	}
	asr, _ := resp.Find("Asr")
	baseAsr, _ := base.Find("Asr")
	if !asr.Athan.After(baseAsr.Athan) {
		t.Errorf("hanafi Asr %v not after shafi Asr %v", asr.Athan, baseAsr.Athan)
	}

	maghrib, _ := resp.Find("Maghrib")
	if got := maghrib.Iqamah.Sub(maghrib.Athan); got != 10*time.Minute {
		t.Errorf("Maghrib delay = %v, want 10m", got)
	}
}

func TestTimings_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"bad date", func(r *Request) { r.Date = "28-02-2026" }, prayertime.ErrInvalidDate},
		{"bad latitude", func(r *Request) { r.Latitude = 91 }, prayertime.ErrInvalidCoordinate},
		{"missing zone", func(r *Request) { r.Timezone = "" }, prayertime.ErrInvalidTimeZone},
		{"unknown zone", func(r *Request) { r.Timezone = "Mars/Olympus" }, prayertime.ErrInvalidTimeZone},
		{"unknown method", func(r *Request) { r.Method = "Atlantis" }, method.ErrUnknownCalculationMethod},
		{"bad madhab", func(r *Request) { r.Madhab = "zahiri" }, prayertime.ErrInvalidMethod},
		{"bad rule", func(r *Request) { r.HighLatitudeRule = "twilight" }, prayertime.ErrInvalidMethod},
		{"polar day", func(r *Request) { r.Date = "2026-06-21"; r.Latitude = 78.2; r.Timezone = "Arctic/Longyearbyen" }, prayertime.ErrNoAngleSolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(&req)

			resp, err := NewClient().Timings(req)
			if err == nil {
				t.Fatalf("expected error, got %+v", resp)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if resp != nil {
				t.Errorf("response = %+v, want nil", resp)
			}
		})
	}
}

func TestTimings_CustomRegistry(t *testing.T) {
	custom := method.Preset{
		Method: method.CalculationMethod{
			Name: "IMCA", FajrAngle: 15, IshaAngle: 15,
			AsrFactor: method.Hanafi, HighLatRule: method.OneSeventhOfNight,
		},
		Description: "Indianapolis Muslim Community Association",
	}
	c := &Client{Registry: method.Default().With(custom)}

	req := sampleRequest()
	req.Method = "imca"
	resp, err := c.Timings(req)
	if err != nil {
		t.Fatalf("Timings returned error: %v", err)
	}
	if resp.Method.Name != "IMCA" || resp.Method.Madhab != "hanafi" {
		t.Errorf("Method = %+v", resp.Method)
	}
}

// ---------------------------------------------------------------------------
// Calendar
// ---------------------------------------------------------------------------

func TestCalendar_ConsecutiveDays(t *testing.T) {
	req := sampleRequest()
	req.Date = "2026-03-27"

	days, err := NewClient().Calendar(req, 5)
	if err != nil {
		t.Fatalf("Calendar returned error: %v", err)
	}
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}

	want := []string{"2026-03-27", "2026-03-28", "2026-03-29", "2026-03-30", "2026-03-31"}
	for i, d := range days {
		if d.Date != want[i] {
			t.Errorf("day %d = %s, want %s", i, d.Date, want[i])
		}
		if err := d.Validate(); err != nil {
			t.Errorf("day %s: %v", d.Date, err)
		}
	}

	// British Summer Time starts on 29 March 2026.
	before, _ := days[1].Find("Dhuhr")
	after, _ := days[2].Find("Dhuhr")
	if _, off := before.Athan.Zone(); off != 0 {
		t.Errorf("28 March offset = %d, want 0", off)
	}
	if _, off := after.Athan.Zone(); off != 3600 {
		t.Errorf("29 March offset = %d, want 3600", off)
	}
}

func TestCalendar_InvalidDays(t *testing.T) {
	if _, err := NewClient().Calendar(sampleRequest(), 0); err == nil {
		t.Error("expected error for zero days")
	}
}
