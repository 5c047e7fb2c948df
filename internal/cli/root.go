package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/iqamah"
	"github.com/smokyabdulrahman/prayer-engine/internal/logging"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// Exit codes returned by the binaries.
const (
	ExitError         = 1
	ExitInvalidInput  = 2
	ExitUnknownMethod = 3
	ExitNoSolution    = 4
)

// ErrInvalidInput marks user errors that are not engine validation errors:
// bad flags, arguments and config values.
var ErrInvalidInput = errors.New("invalid input")

// timeNow is replaced in tests.
var timeNow = time.Now

// configFlags maps flag names to the config key they override.
var configFlags = map[string]string{
	"latitude":      "latitude",
	"longitude":     "longitude",
	"timezone":      "timezone",
	"method":        "method",
	"madhab":        "madhab",
	"high-lat-rule": "high_lat_rule",
	"iqamah":        "iqamah",
	"time-format":   "time_format",
	"prayers":       "prayers",
	"cache-dir":     "cache_dir",
	"methods-file":  "methods_file",
	"redis-addr":    "redis_addr",
}

// app carries state shared by the commands of one root command.
type app struct {
	date    string
	json    bool
	verbose bool
	logJSON bool

	// cfg is the effective configuration, set in PersistentPreRunE.
	cfg *config.Config
}

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "prayer-times",
		Short: "Islamic prayer times CLI",
		Long: "Computes the five daily prayers and sunrise from the position of the sun,\n" +
			"with iqamah times, a Hijri date and the qibla direction. Works offline.",
		Version:           version,
		PersistentPreRunE: a.setup,
		// Default action: show today's prayer schedule.
		RunE:          a.runToday,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.Float64("latitude", 0, "Latitude in degrees, north positive")
	pf.Float64("longitude", 0, "Longitude in degrees, east positive")
	pf.String("timezone", "", "IANA time zone, e.g. Europe/London")
	pf.String("method", "", "Calculation method (see `prayer-times methods`)")
	pf.String("madhab", "", "Asr convention: shafi or hanafi")
	pf.String("high-lat-rule", "", "High latitude rule: none, middle-of-night, one-seventh or angle-based")
	pf.String("iqamah", "", "Iqamah delays in minutes, e.g. fajr=25,maghrib=10")
	pf.String("time-format", "", "Time format: 12h or 24h")
	pf.String("prayers", "", "Comma-separated list of prayers to show")
	pf.String("cache-dir", "", "Cache directory (default: ~/.cache/prayer-times/)")
	pf.String("methods-file", "", "YAML file with custom calculation methods")
	pf.String("redis-addr", "", "Redis address for a shared schedule cache")
	pf.StringVar(&a.date, "date", "", "Date as YYYY-MM-DD (default: today in the location's time zone)")
	pf.BoolVar(&a.json, "json", false, "Output as JSON")
	pf.BoolVarP(&a.verbose, "verbose", "V", false, "Log debug output to stderr")
	pf.BoolVar(&a.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(a.newNextCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newWeekCmd())
	rootCmd.AddCommand(a.newMonthCmd())
	rootCmd.AddCommand(a.newQueryCmd())
	rootCmd.AddCommand(a.newMethodsCmd())
	rootCmd.AddCommand(a.newQiblaCmd())
	rootCmd.AddCommand(a.newConfigCmd())

	return rootCmd
}

// setup configures logging and builds the effective configuration:
// CLI flags > environment > config file > defaults.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logging.Setup(a.verbose, a.logJSON)

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	file, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// applyFlags copies explicitly set flags into cfg, validating them exactly
// like `config set`.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := configFlags[f.Name]
		if !ok || err != nil {
			return
		}
		if e := cfg.Set(key, f.Value.String()); e != nil {
			err = fmt.Errorf("%w: --%s: %v", ErrInvalidInput, f.Name, e)
		}
	})
	return err
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	var noSolution *prayertime.NoSolutionError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, method.ErrUnknownCalculationMethod):
		return ExitUnknownMethod
	case errors.As(err, &noSolution), errors.Is(err, prayertime.ErrNoAngleSolution):
		return ExitNoSolution
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, prayertime.ErrInvalidDate),
		errors.Is(err, prayertime.ErrInvalidCoordinate),
		errors.Is(err, prayertime.ErrInvalidTimeZone),
		errors.Is(err, prayertime.ErrInvalidMethod),
		errors.Is(err, iqamah.ErrIncompletePolicy):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unknown command %q for %q", ErrInvalidInput, args[0], cmd.CommandPath())
	}
	return nil
}

func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	}
}
