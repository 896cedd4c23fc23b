package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/store"
)

// NewSearchCommand creates the 'search' subcommand for filtering group rows
// Usage: study-log search --group study [--filter "minutes>30"] [--limit 5] [--format csv]
func NewSearchCommand() *cobra.Command {
	var group string
	var filters []string
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List a group's rows, optionally filtered",
		Long: `List the rows of a group in file order (chronological by insertion).

Filters are typed by the column they reference:
  text columns     subject=math  subject!=math
  number columns   minutes>30  minutes>=30  minutes<60  minutes between 30 and 60
  the date column  date=2024-01-01  date between 2024-01-01 and 2024-01-31

Repeating --filter narrows the result further (filters AND together).

Example:
  study-log search --group study --filter "minutes>30"
  study-log search --group study --filter "date between 2024-01-01 and 2024-01-31" --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.OutOrStdout(), group, filters, limit, format)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", config.GroupDescription)
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter expression (repeatable, ANDed together)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows to print (0 = all)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	cmd.MarkFlagRequired("group")

	return cmd
}

func runSearch(w io.Writer, group string, filters []string, limit int, format string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	g, err := env.store.Load(group)
	if err != nil {
		return err
	}

	pred, err := store.ParseFilters(filters, g.Schema)
	if err != nil {
		return err
	}

	var records [][]string
	for row := range g.Search(pred) {
		if limit > 0 && len(records) == limit {
			break
		}
		records = append(records, row.Strings())
	}

	if err := renderRecords(w, g.Schema.Names(), records, format); err != nil {
		return err
	}

	env.recordEvent("SEARCH group=%s filters=%d rows=%d", group, len(filters), len(records))
	return nil
}
