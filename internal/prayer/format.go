package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Display modes for a single prayer, used by `next` and the tmux binary.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatNameTimeAndIqamah  = "name-time-and-iqamah"
	FormatFull               = "full"
)

// Formats lists the built-in modes.
var Formats = []string{
	FormatTimeRemaining, FormatNextPrayerTime, FormatNameAndTime,
	FormatNameAndRemaining, FormatShortNameAndTime, FormatShortNameAndRemain,
	FormatNameTimeAndIqamah, FormatFull,
}

// FormatData is the data passed to custom templates.
type FormatData struct {
	Name      string // "Asr"
	ShortName string // "A"
	Time      string // athan, "15:02" or "3:02 PM"
	Iqamah    string // empty for Sunrise
	Remaining string // "2h 15m"
	Hours     int
	Minutes   int
	Adjusted  bool
}

// FormatOutput formats a prayer according to mode. layout is a time layout
// such as "15:04".
//
// A mode containing "{{" is a text/template over FormatData, e.g.
// "{{.Name}} in {{.Remaining}}" -> "Asr in 2h 15m".
func FormatOutput(p Prayer, now time.Time, mode string, layout string) string {
	d := TimeRemaining(p, now)
	remaining := FormatRemaining(d)
	timeStr := p.Time.Format(layout)
	short := ShortNames[p.Name]
	iqamah := ""
	if p.Iqamah != nil {
		iqamah = p.Iqamah.Format(layout)
	}

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      p.Name,
			ShortName: short,
			Time:      timeStr,
			Iqamah:    iqamah,
			Remaining: remaining,
			Hours:     int(d.Hours()),
			Minutes:   int(d.Minutes()) % 60,
			Adjusted:  p.Adjusted,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", p.Name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatNameTimeAndIqamah:
		if iqamah == "" {
			return fmt.Sprintf("%s %s", p.Name, timeStr)
		}
		return fmt.Sprintf("%s %s / %s", p.Name, timeStr, iqamah)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", p.Name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return buf.String()
}
