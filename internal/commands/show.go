package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/models"
	"github.com/Kai-Rice/study-log/internal/store"
)

// NewShowCommand creates the 'show' subcommand for a per-day view across groups
// Usage: study-log show [--date 2024-01-01]
func NewShowCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show all rows logged on one day, across every group",
		Long: `Walk every group CSV and print the rows whose timestamp falls on the
given day (default today), one block per group, skipping empty cells.

Example:
  study-log show
  study-log show --date 2024-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD, default today)")

	return cmd
}

func runShow(w io.Writer, date string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := models.ParseDate(date); err != nil {
		return &store.ValidationError{Column: "date", Msg: fmt.Sprintf("value %q is %v", date, err)}
	}

	names, err := env.store.List()
	if err != nil {
		return err
	}

	shown := 0
	for _, name := range names {
		g, err := env.store.Load(name)
		if err != nil {
			return err
		}
		if len(g.Schema) == 0 {
			continue
		}

		pred, err := store.ParseFilters([]string{g.Schema[0].Name + "=" + date}, g.Schema)
		if err != nil {
			return err
		}

		for row := range g.Search(pred) {
			cells := nonEmptyCells(g.Schema, row)
			if len(cells) == 0 {
				continue
			}
			if shown > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "[Group: %s]\n", name)
			printAligned(w, cells)
			shown++
		}
	}

	if shown == 0 {
		fmt.Fprintf(w, "%s: no data for %s in any group\n", config.AppName, date)
		return nil
	}

	env.recordEvent("SHOW date=%s rows=%d", date, shown)
	return nil
}

type cell struct {
	name  string
	value string
}

func nonEmptyCells(schema models.Schema, row models.Row) []cell {
	var cells []cell
	for i, col := range schema {
		if i < len(row) && !row[i].Empty() {
			cells = append(cells, cell{name: col.Name, value: row[i].Raw})
		}
	}
	return cells
}

// printAligned prints "name : value" lines with the names padded to a
// common width.
func printAligned(w io.Writer, cells []cell) {
	width := 0
	for _, c := range cells {
		if len(c.name) > width {
			width = len(c.name)
		}
	}
	for _, c := range cells {
		fmt.Fprintf(w, "%s : %s\n", c.name+strings.Repeat(" ", width-len(c.name)), c.value)
	}
}
