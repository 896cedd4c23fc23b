package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/database"
)

// NewExportCommand creates the 'export' subcommand for materializing groups
// into SQLite
// Usage: study-log export [--db study_log.db]
func NewExportCommand() *cobra.Command {
	var dbFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all groups into a SQLite database for ad-hoc SQL",
		Long: `Materialize every group CSV into a SQLite database, one table per group,
with columns typed from the inferred schema.

The CSV files remain the source of truth; rerunning export rebuilds every
table from the current CSV content. Use the 'query' command to run SQL
against the result.

Example:
  study-log export
  study-log export --db /tmp/study.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), dbFile)
		},
	}

	cmd.Flags().StringVarP(&dbFile, "db", "d", "", config.DatabaseDescription+" (default from config)")

	return cmd
}

func runExport(w io.Writer, dbFile string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	if dbFile == "" {
		dbFile = env.cfg.DatabaseFile
	}

	names, err := env.store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(w, "%s: nothing to export, no groups in %s\n", config.AppName, env.cfg.DataDir)
		return nil
	}

	db, err := database.Initialize(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	var totalRows int64
	for _, name := range names {
		g, err := env.store.Load(name)
		if err != nil {
			return err
		}
		count, err := database.ExportGroup(db, g)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s: %d row(s)\n", name, count)
		totalRows += count
	}

	env.recordEvent("EXPORT db=%s groups=%d rows=%d", dbFile, len(names), totalRows)
	fmt.Fprintf(w, "%s: exported %d group(s), %d row(s) to %s\n", config.AppName, len(names), totalRows, dbFile)
	return nil
}
