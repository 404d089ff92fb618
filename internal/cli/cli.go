// Package cli wires the cobra command tree: the root command runs one
// monitoring cycle; subcommands bootstrap a config file and export the
// tracked events as an iCalendar file.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/logger"
	"github.com/openchess/entrywatch/internal/monitor"
	"github.com/openchess/entrywatch/internal/notify"
	"github.com/openchess/entrywatch/internal/scraper"
	"github.com/openchess/entrywatch/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess       = 0
	ExitError         = 1
	ExitListingFailed = 2
)

var (
	flagConfig     string
	flagDataDir    string
	flagDaysBefore int
	flagInclude    string
	flagExclude    string
	flagFormat     string
	flagVerbose    bool
	flagDryRun     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entrywatch",
		Short: "Monitor club tournament entry lists for new and withdrawn participants",
		Long: `entrywatch scrapes the club events listing, tracks each upcoming
tournament's entry list across runs, and reports who entered or withdrew
since the last check.`,
		SilenceUsage: true,
		RunE:         runMonitor,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for snapshots (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.Flags().IntVar(&flagDaysBefore, "days-before", 0, "Monitoring window in days (overrides config)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "Comma-separated keywords an event name must contain (overrides config)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Comma-separated keywords that reject an event (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")

	cmd.AddCommand(newInitConfigCmd())
	cmd.AddCommand(newCalendarCmd())

	return cmd
}

// Execute runs the command tree and maps errors to exit codes. A failed
// listing fetch gets its own code so schedulers can tell "site down" from
// "bad invocation".
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, monitor.ErrListingUnavailable) {
			return ExitListingFailed
		}
		return ExitError
	}
	return ExitSuccess
}

// runMonitor is the root command logic: one full monitoring cycle.
func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	mon := monitor.New(cfg, scraper.New(cfg.BaseURL), store)
	reports, err := mon.Run()
	if err != nil {
		return err
	}

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		EventCount: len(reports),
		Events:     reports,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return err
	}

	for _, sink := range buildNotifiers(cfg) {
		if err := sink.Notify(reports); err != nil {
			logger.Error("notification failed", logger.Fields{"sink": sink.Name()}, err)
		}
	}
	return nil
}

// loadConfig loads the config file and applies flag overrides, flags last.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("days-before") {
		cfg.DaysBefore = flagDaysBefore
	}
	if cmd.Flags().Changed("include") {
		cfg.Include = flagInclude
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = flagExclude
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}
	return cfg, nil
}

// buildNotifiers assembles the enabled sinks. Under --dry-run every enabled
// sink is replaced by a single console printer.
func buildNotifiers(cfg *config.Config) []notify.Notifier {
	if flagDryRun {
		return []notify.Notifier{notify.NewDryRunNotifier(os.Stderr)}
	}

	var sinks []notify.Notifier
	if cfg.Email.Enabled {
		sinks = append(sinks, notify.NewEmailNotifier(cfg.Email))
	}
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram)
		if err != nil {
			logger.Error("telegram sink disabled", nil, err)
		} else {
			sinks = append(sinks, tg)
		}
	}
	if cfg.Twitter.Enabled {
		tw, err := notify.NewTwitterNotifier()
		if err != nil {
			logger.Error("twitter sink disabled", nil, err)
		} else {
			sinks = append(sinks, tw)
		}
	}
	return sinks
}
