package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/rangepick/internal/cli"
	"github.com/terraincognita07/rangepick/internal/i18n"
	"github.com/terraincognita07/rangepick/internal/selection"
	"github.com/terraincognita07/rangepick/internal/services"
)

func NewPurgeSessionsCommand() *cobra.Command {
	var (
		dbPath    string
		olderThan time.Duration
	)

	cmd := &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete idle sessions and their committed ranges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RunPurgeSessionsCommand(cmd.OutOrStdout(), dbPath, olderThan)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", getEnv("DB_PATH", filepath.Join("data", "rangepick.db")), "SQLite database path")
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "idle time after which a session is purged")
	return cmd
}

func NewMonthCommand() *cobra.Command {
	var (
		taps     []string
		untaps   []string
		language string
	)

	cmd := &cobra.Command{
		Use:   "month [2006-01]",
		Short: "Replay taps and print the month grid",
		Long: `Replay taps through a range selection controller and print the month.

Every --select is an activation and every --deselect a deactivation. All
--select taps are replayed first, in order, followed by the --deselect taps.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawMonth := ""
			if len(args) == 1 {
				rawMonth = args[0]
			}
			month, err := services.ParseMonthParam(rawMonth, time.Now(), time.Local)
			if err != nil {
				return err
			}

			cfg, err := resolveCalendarConfig()
			if err != nil {
				return fmt.Errorf("calendar config: %w", err)
			}

			events := make([]selection.Event, 0, len(taps)+len(untaps))
			for _, raw := range taps {
				day, err := services.ParseDayParam(raw)
				if err != nil {
					return fmt.Errorf("--select %q: %w", raw, err)
				}
				events = append(events, selection.Activated(day))
			}
			for _, raw := range untaps {
				day, err := services.ParseDayParam(raw)
				if err != nil {
					return fmt.Errorf("--deselect %q: %w", raw, err)
				}
				events = append(events, selection.Deactivated(day))
			}

			report, err := cli.ReplayTaps(cfg, month, events)
			if err != nil {
				return err
			}

			labels, err := i18n.NewEmbeddedManager(i18n.LangEN)
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			if !slices.Contains(labels.SupportedLanguages(), language) {
				return fmt.Errorf("unsupported language %q (available: %s)", language, strings.Join(labels.SupportedLanguages(), ", "))
			}
			cli.RenderMonth(cmd.OutOrStdout(), report, labels, language)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&taps, "select", nil, "activate a day (repeatable)")
	cmd.Flags().StringArrayVar(&untaps, "deselect", nil, "deactivate a day after all selections (repeatable)")
	cmd.Flags().StringVar(&language, "lang", getEnv("DEFAULT_LANGUAGE", i18n.LangEN), "label language")
	return cmd
}
