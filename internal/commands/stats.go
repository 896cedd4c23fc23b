package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/store"
)

// NewStatsCommand creates the 'stats' subcommand for aggregating a numeric column
// Usage: study-log stats --group study --column minutes --op sum [--filter EXPR]
func NewStatsCommand() *cobra.Command {
	var group string
	var column string
	var opName string
	var filters []string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate a numeric column of a group",
		Long: `Apply sum, avg, min, max or count over the values of a numeric column,
optionally restricted to rows matching --filter expressions.

Aggregating a text or date column is a type error.

Example:
  study-log stats --group study --column minutes --op sum
  study-log stats --group study --column minutes --op avg --filter "date between 2024-01-01 and 2024-01-31"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), group, column, opName, filters)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", config.GroupDescription)
	cmd.Flags().StringVarP(&column, "column", "c", "", "column to aggregate")
	cmd.Flags().StringVar(&opName, "op", "sum", "aggregation op: sum, avg, min, max or count")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter expression (repeatable, ANDed together)")
	cmd.MarkFlagRequired("group")
	cmd.MarkFlagRequired("column")

	return cmd
}

func runStats(w io.Writer, group, column, opName string, filters []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	op, err := store.ParseAggOp(opName)
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

	result, err := g.Aggregate(column, op, pred)
	if err != nil {
		return err
	}

	env.recordEvent("STATS group=%s %s(%s)=%s", group, op, column, formatNumber(result))
	fmt.Fprintf(w, "%s(%s) = %s\n", op, column, formatNumber(result))
	return nil
}
