package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

func (a *app) newQueryCmd() *cobra.Command {
	var days string

	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha",
		Args: rangeArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], days)
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, name, daysFlag string) error {
	kind, err := prayertime.ParseKind(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	days := 1
	if daysFlag != "" {
		if days, err = parseDays(daysFlag); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	s, err := a.newSession(ctx)
	if err != nil {
		return err
	}
	start, err := s.startDate(a.date)
	if err != nil {
		return err
	}
	schedules, err := s.days(ctx, start, days)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if a.json {
		return printQueryJSON(w, kind, schedules, days == 1)
	}

	if days == 1 {
		p, _ := schedules[0].Find(kind.String())
		line := fmt.Sprintf("%s %s", p.Name, s.athan(p.Athan, schedules[0].Date, p.Adjusted))
		if p.Iqamah != nil {
			line += fmt.Sprintf(" (iqamah %s)", p.Iqamah.Format(s.layout))
		}
		fmt.Fprintln(w, line)
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times: %d Days", kind, days)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s (%s)\n", s.place.Label, s.place.Timezone)
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", "Athan", "Iqamah"})
	today := s.now().Format(time.DateOnly)
	var note string
	for i := range schedules {
		resp := &schedules[i]
		p, _ := resp.Find(kind.String())
		iq := ""
		if p.Iqamah != nil {
			iq = p.Iqamah.Format(s.layout)
		}
		tbl.AddRow([]string{dayLabel(resp.Date), s.athan(p.Athan, resp.Date, p.Adjusted), iq})
		if resp.Date == today {
			tbl.SetHighlightRow(i)
		}
		if p.Adjusted {
			note = adjustedNote(resp)
		}
	}
	if note != "" {
		tbl.AddNote(note)
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONDay struct {
	Date   string     `json:"date"`
	Hijri  string     `json:"hijri,omitempty"`
	Athan  time.Time  `json:"athan"`
	Iqamah *time.Time `json:"iqamah,omitempty"`
}

type queryJSON struct {
	Prayer string         `json:"prayer"`
	Days   []queryJSONDay `json:"days"`
}

func printQueryJSON(w io.Writer, kind prayertime.Kind, schedules []api.Response, single bool) error {
	out := queryJSON{Prayer: strings.ToLower(kind.String())}
	for i := range schedules {
		p, _ := schedules[i].Find(kind.String())
		out.Days = append(out.Days, queryJSONDay{
			Date:   schedules[i].Date,
			Hijri:  schedules[i].Hijri,
			Athan:  p.Athan,
			Iqamah: p.Iqamah,
		})
	}
	if single {
		return api.Encode(w, out.Days[0])
	}
	return api.Encode(w, out)
}
