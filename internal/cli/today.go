package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

func (a *app) runToday(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := a.newSession(ctx)
	if err != nil {
		return err
	}
	date, err := s.startDate(a.date)
	if err != nil {
		return err
	}
	resp, err := s.day(ctx, date)
	if err != nil {
		return err
	}

	prayers, err := prayer.FromResponse(resp, s.prayers)
	if err != nil {
		return err
	}

	// Current and next only make sense for the schedule of today.
	now := s.now()
	var current, next *prayer.Prayer
	if now.Format(time.DateOnly) == resp.Date {
		current = prayer.CurrentPrayer(prayers, now)
		next = prayer.NextPrayer(prayers, now)
	}

	w := cmd.OutOrStdout()
	if a.json {
		return printTodayJSON(w, resp, current, next, now, s.layout)
	}
	printTodayRich(w, s, resp, prayers, current, next, now)
	return nil
}

// printTodayRich renders the coloured terminal output for one day.
func printTodayRich(w io.Writer, s *session, resp *api.Response, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.place.Label)
	fmt.Fprintf(w, "  %s\n", resp.Location.Timezone)

	if d, err := time.Parse(time.DateOnly, resp.Date); err == nil {
		fmt.Fprintf(w, "  %s\n", d.Format("Monday 02 January 2006"))
	}
	if resp.Hijri != "" {
		fmt.Fprintf(w, "  %s\n", resp.Hijri)
	}
	fmt.Fprintf(w, "  %s\n", display.Dim(methodSummary(resp.Method)))
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Prayer", "Athan", "Iqamah", ""})
	adjusted := false
	for _, p := range prayers {
		iq := ""
		if p.Iqamah != nil {
			iq = p.Iqamah.Format(s.layout)
		}
		adjusted = adjusted || p.Adjusted

		row := []string{p.Name, s.athan(p.Time, resp.Date, p.Adjusted), iq, ""}
		switch {
		case next != nil && p.Name == next.Name:
			row[3] = "<- next in " + prayer.FormatRemaining(prayer.TimeRemaining(p, now))
			tbl.AddStyledRow(display.Highlight, row)
		case current != nil && p.Name == current.Name:
			tbl.AddStyledRow(display.Faded, row)
		default:
			tbl.AddRow(row)
		}
	}
	if adjusted {
		tbl.AddNote(adjustedNote(resp))
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

func methodSummary(m api.MethodInfo) string {
	isha := fmt.Sprintf("Isha %g°", m.IshaAngle)
	if m.IshaInterval > 0 {
		isha = fmt.Sprintf("Isha %d min", m.IshaInterval)
	}
	return fmt.Sprintf("%s (Fajr %g°, %s, %s, %s)", m.Name, m.FajrAngle, isha, m.Madhab, m.HighLatitudeRule)
}

// todayJSON is the response plus the live position in the day.
type todayJSON struct {
	*api.Response
	Current string    `json:"current,omitempty"`
	Next    *nextJSON `json:"next,omitempty"`
}

type nextJSON struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func printTodayJSON(w io.Writer, resp *api.Response, current, next *prayer.Prayer, now time.Time, layout string) error {
	out := todayJSON{Response: resp}
	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &nextJSON{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		}
	}
	return api.Encode(w, out)
}
