package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
)

// NewLogCommand creates the 'log' subcommand for appending a row to a group
// Usage: study-log log --group study --set minutes=30 [--set subject=math] [--date 2024-01-01]
func NewLogCommand() *cobra.Command {
	var group string
	var sets []string
	var date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append a row of values to a group",
		Long: `Append one observation to a group's CSV file.

Values are given as repeatable --set column=value pairs and are validated
against the column's inferred type (the timestamp column holds dates, a
column whose values all parse as numbers holds numbers, everything else is
text). The row's date defaults to today unless --date is given.

Logging to a group that does not exist yet creates its CSV file with the
provided columns. Setting a column the group has never seen extends the
header; earlier rows show an empty value in that column.

Example:
  study-log log --group study --set minutes=30 --set subject=math
  study-log log --group mood --set score=7 --date 2024-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.OutOrStdout(), group, sets, date)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", config.GroupDescription)
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "column=value pair to log (repeatable)")
	cmd.Flags().StringVar(&date, "date", "", "date to log under (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("group")
	cmd.MarkFlagRequired("set")

	return cmd
}

// runLog executes the append: load, validate+append, save, audit.
func runLog(w io.Writer, group string, sets []string, date string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	fields, err := parseSetFlags(sets)
	if err != nil {
		return err
	}

	g, err := env.store.Load(group)
	if err != nil {
		return err
	}

	row, err := g.Log(fields, date)
	if err != nil {
		return err
	}

	if err := env.store.Save(g); err != nil {
		return err
	}

	summary := summarizeRow(g.Schema, row)
	env.recordEvent("LOG group=%s %s", group, summary)
	fmt.Fprintf(w, "%s: logged to group %q: %s\n", config.AppName, group, summary)
	return nil
}
