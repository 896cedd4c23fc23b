// Package main provides the CLI entry point for study-log, a terminal tool
// that appends and queries per-metric records stored as plain CSV files, one
// file per group.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/commands"
	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Append and query per-metric records stored as CSV files",
		Long: `study-log keeps one CSV file per group (study time, mood, ...) under a
data directory and lets you append rows, filter and aggregate them, and keep
a plain-text history of what you did.

The data directory defaults to ./data and can be moved with the DATA_DIR
environment variable. Group files are plain CSV: edit them by hand whenever
you like.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// flag errors are usage errors, exit code 2
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return store.Usagef("%v", err)
	})

	rootCmd.AddCommand(
		commands.NewLogCommand(),
		commands.NewSearchCommand(),
		commands.NewStatsCommand(),
		commands.NewShowCommand(),
		commands.NewGroupsCommand(),
		commands.NewHistoryCommand(),
		commands.NewExportCommand(),
		commands.NewQueryCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto process exit codes: 2 for usage
// errors (unrecognized command or flag), 1 for validation, storage, and
// type errors.
func exitCode(err error) int {
	var uerr *store.UsageError
	if errors.As(err, &uerr) {
		return 2
	}
	// cobra reports bad invocations as plain errors
	if strings.HasPrefix(err.Error(), "unknown command") ||
		strings.HasPrefix(err.Error(), "required flag(s)") {
		return 2
	}
	return 1
}
