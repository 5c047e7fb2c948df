// Package prayer turns computed schedules into the list of events the CLI
// tracks and answers "what is next" questions about them.
package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// Prayer is one tracked event.
type Prayer struct {
	Name     string
	Time     time.Time  // athan
	Iqamah   *time.Time // nil for Sunrise
	Adjusted bool       // produced by a high latitude rule
}

// DefaultPrayerNames are the events tracked by default, in canonical order.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// ParseNames reads a comma-separated prayer list, normalising case.
// An empty string yields DefaultPrayerNames.
func ParseNames(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return DefaultPrayerNames, nil
	}
	var names []string
	for _, n := range strings.Split(csv, ",") {
		k, err := prayertime.ParseKind(n)
		if err != nil {
			return nil, err
		}
		names = append(names, k.String())
	}
	return names, nil
}

// FromResponse extracts the selected prayers from a schedule, keeping
// canonical order regardless of the order of selected.
func FromResponse(resp *api.Response, selected []string) ([]Prayer, error) {
	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		k, err := prayertime.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		want[k.String()] = true
	}

	var prayers []Prayer
	for _, p := range resp.Prayers {
		if !want[p.Name] {
			continue
		}
		prayers = append(prayers, Prayer{
			Name:     p.Name,
			Time:     p.Athan,
			Iqamah:   p.Iqamah,
			Adjusted: p.Adjusted,
		})
	}
	return prayers, nil
}

// NextPrayer finds the first prayer whose athan is after now.
// If all have passed it returns nil; the caller should look at tomorrow.
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the latest prayer whose athan is at or before now,
// or nil if none has started yet.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		cur = &prayers[i]
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// TimeLayout maps the time_format setting to a time layout.
func TimeLayout(format string) string {
	if format == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
