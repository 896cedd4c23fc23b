package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kai-Rice/study-log/internal/config"
)

// NewGroupsCommand creates the 'groups' subcommand listing known groups
// Usage: study-log groups
func NewGroupsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List all groups in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroups(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")

	return cmd
}

func runGroups(w io.Writer, format string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	names, err := env.store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(w, "%s: no groups yet in %s\n", config.AppName, env.cfg.DataDir)
		return nil
	}

	records := make([][]string, 0, len(names))
	for _, name := range names {
		g, err := env.store.Load(name)
		if err != nil {
			return err
		}
		records = append(records, []string{
			name,
			strconv.Itoa(len(g.Schema)),
			strconv.Itoa(len(g.Rows)),
		})
	}

	return renderRecords(w, []string{"group", "columns", "rows"}, records, format)
}
