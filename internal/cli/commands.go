package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/openchess/entrywatch/internal/calendar"
	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/storage"
	"github.com/spf13/cobra"
)

// newInitConfigCmd writes a commented starter config file.
func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a commented default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(flagConfig); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagConfig)
			return nil
		},
	}
}

// newCalendarCmd exports the currently tracked events as an iCalendar file.
func newCalendarCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export tracked events as an iCalendar (.ics) file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := storage.New(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			snaps, err := store.All()
			if err != nil {
				return err
			}

			ics := calendar.Generate(snaps, time.Now())
			if outputPath == "" || outputPath == "-" {
				fmt.Fprint(cmd.OutOrStdout(), ics)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}
