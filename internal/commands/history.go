package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
)

// NewHistoryCommand creates the 'history' subcommand for the audit trail
// Usage: study-log history [--limit 20]
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent tool invocations from the audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show (0 = all)")

	return cmd
}

func runHistory(w io.Writer, limit int) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	entries, err := env.events.History(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "%s: no history yet in %s\n", config.AppName, env.cfg.HistoryFile)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(w, entry.String())
	}
	return nil
}
