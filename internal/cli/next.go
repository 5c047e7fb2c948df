package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

func (a *app) newNextCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThis is what the tmux status bar binary prints.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runNext(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", prayer.FormatFull,
		"Display format: "+strings.Join(prayer.Formats, ", ")+
			", or a Go template over .Name .ShortName .Time .Iqamah .Remaining .Hours .Minutes .Adjusted")

	return cmd
}

func (a *app) runNext(cmd *cobra.Command, format string) error {
	ctx := cmd.Context()
	s, err := a.newSession(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	today := prayertime.DateOf(now)

	resp, err := s.day(ctx, today)
	if err != nil {
		return err
	}
	prayers, err := prayer.FromResponse(resp, s.prayers)
	if err != nil {
		return err
	}

	next := prayer.NextPrayer(prayers, now)

	// All of today's prayers have passed: the next one is tomorrow's first.
	if next == nil {
		tResp, err := s.day(ctx, today.AddDays(1))
		if err != nil {
			return fmt.Errorf("failed to compute tomorrow's times: %w", err)
		}
		tomorrow, err := prayer.FromResponse(tResp, s.prayers)
		if err != nil {
			return err
		}
		next = prayer.NextPrayer(tomorrow, now)
	}
	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, now, format, s.layout))
	return nil
}
