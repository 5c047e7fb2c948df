package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/logging"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
	"github.com/smokyabdulrahman/prayer-engine/internal/qibla"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		Args:  noArgs,
		// The config commands must work even when the environment holds
		// invalid overrides, so they skip the effective config.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logging.Setup(a.verbose, a.logJSON)
			return nil
		},
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n"+
			"  prayer-times config set latitude 21.4225\n"+
			"  prayer-times config set timezone Asia/Riyadh\n"+
			"  prayer-times config set method UmmAlQura\n"+
			"  prayer-times config set iqamah fajr=25,maghrib=10\n"+
			"  prayer-times config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: rangeArgs(2, 2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  noArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  noArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the stored configuration and any environment
// overrides.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	defaults := config.Defaults()
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Dim(notSetLabel(key, &defaults))
		}
		if env, ok := os.LookupEnv(config.EnvName(key)); ok && env != "" {
			shown += display.Warn(fmt.Sprintf("  (overridden by %s=%s)", config.EnvName(key), env))
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
	return nil
}

func notSetLabel(key string, defaults *config.Config) string {
	switch key {
	case "madhab":
		return "(method default, presets use " + config.DefaultMadhab + ")"
	case "high_lat_rule":
		return "(method default, presets use " + config.DefaultHighLatRule + ")"
	}
	if d, _ := defaults.Get(key); d != "" {
		return "(default: " + d + ")"
	}
	return "(not set)"
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

func runConfigReset(cmd *cobra.Command, _ []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func (a *app) newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the built-in calculation methods and any loaded from the methods file.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(a.cfg)
			if err != nil {
				return err
			}
			presets := client.Registry.All()

			w := cmd.OutOrStdout()
			if a.json {
				infos := make([]api.MethodInfo, len(presets))
				for i, p := range presets {
					infos[i] = api.MethodInfoOf(p.Method)
				}
				return api.Encode(w, infos)
			}

			fmt.Fprintln(w, "Supported calculation methods:")
			fmt.Fprintln(w)
			tbl := display.NewTable([]string{"Name", "Fajr", "Isha", "Description"})
			for _, p := range presets {
				tbl.AddRow([]string{p.Method.Name, fmt.Sprintf("%g°", p.Method.FajrAngle), ishaLabel(p.Method), p.Description})
			}
			fmt.Fprint(w, tbl.Render())
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Use --method <name> to select a method. Default: %s.\n", config.DefaultMethod)
			return nil
		},
	}
}

func ishaLabel(m method.CalculationMethod) string {
	if m.UsesInterval() {
		return fmt.Sprintf("%d min", m.IshaInterval)
	}
	return fmt.Sprintf("%g°", m.IshaAngle)
}

type qiblaJSON struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Bearing    float64 `json:"bearing"`
	Compass    string  `json:"compass"`
	DistanceKm float64 `json:"distance_km"`
}

func (a *app) newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the direction of the Kaaba",
		Long:  "Print the initial great-circle bearing from the location to the Kaaba, clockwise from true north.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := resolvePlace(ctx, a.cfg, openCache(ctx, a.cfg))
			if err != nil {
				return err
			}
			coord, err := prayertime.NewCoordinate(p.Latitude, p.Longitude)
			if err != nil {
				return err
			}
			res, err := qibla.Direction(coord)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.json {
				return api.Encode(w, qiblaJSON{
					Latitude:   p.Latitude,
					Longitude:  p.Longitude,
					Bearing:    res.Bearing,
					Compass:    qibla.Compass(res.Bearing),
					DistanceKm: res.DistanceKm,
				})
			}

			fmt.Fprintln(w)
			fmt.Fprintf(w, "  %s\n", display.Bold("Qibla"))
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  %s\n", p.Label)
			fmt.Fprintf(w, "  Bearing   %s\n", display.Accent(fmt.Sprintf("%.2f° %s", res.Bearing, qibla.Compass(res.Bearing))))
			fmt.Fprintf(w, "  Distance  %.0f km\n", res.DistanceKm)
			fmt.Fprintln(w)
			return nil
		},
	}
}
