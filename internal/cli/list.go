package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// maxDays bounds list and query ranges.
const maxDays = 366

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7), starting today or at --date.",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := parseDays(args[0])
				if err != nil {
					return err
				}
				days = n
			}
			return a.runList(cmd, days)
		},
	}
}

func (a *app) newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, 7)
		},
	}
}

func (a *app) newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, 30)
		},
	}
}

// parseDays accepts a positive count, "week" or "month".
func parseDays(s string) (int, error) {
	switch s {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxDays {
		return 0, fmt.Errorf("%w: invalid number of days %q: must be 1-%d, 'week' or 'month'", ErrInvalidInput, s, maxDays)
	}
	return n, nil
}

func (a *app) runList(cmd *cobra.Command, days int) error {
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
		return api.Encode(w, schedules)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times: %d Days", days)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s (%s)\n", s.place.Label, s.place.Timezone)
	fmt.Fprintf(w, "  %s\n", display.Dim(methodSummary(schedules[0].Method)))
	fmt.Fprintln(w)

	headers := append([]string{"Date"}, s.prayers...)
	tbl := display.NewTable(headers)
	today := s.now().Format(time.DateOnly)
	var note string

	for i := range schedules {
		resp := &schedules[i]
		prayers, err := prayer.FromResponse(resp, s.prayers)
		if err != nil {
			return err
		}

		row := []string{dayLabel(resp.Date)}
		for _, p := range prayers {
			row = append(row, s.athan(p.Time, resp.Date, p.Adjusted))
			if p.Adjusted {
				note = adjustedNote(resp)
			}
		}
		tbl.AddRow(row)
		if resp.Date == today {
			tbl.SetHighlightRow(i)
		}
	}
	if note != "" {
		tbl.AddNote(note)
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

// dayLabel turns "2026-02-28" into "Sat 28 Feb".
func dayLabel(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("Mon 02 Jan")
}
