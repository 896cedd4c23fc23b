// Package commands implements the CLI subcommands for study-log
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kai-Rice/study-log/internal/config"
	"github.com/Kai-Rice/study-log/internal/events"
	"github.com/Kai-Rice/study-log/internal/models"
	"github.com/Kai-Rice/study-log/internal/store"
)

// environment bundles the configured collaborators every command needs:
// resolved paths, the group store, and the audit trail.
type environment struct {
	cfg    *config.Config
	store  *store.Store
	events *events.Log
}

func newEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &environment{
		cfg:    cfg,
		store:  store.New(cfg.DataDir),
		events: events.New(cfg.HistoryFile),
	}, nil
}

// recordEvent appends a line to the audit trail. A history write failure is
// reported as a warning but does not fail a command whose real work already
// succeeded.
func (e *environment) recordEvent(format string, args ...interface{}) {
	if err := e.events.Record(fmt.Sprintf(format, args...)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: warning: %v\n", config.AppName, err)
	}
}

// parseSetFlags turns repeated --set column=value flags into ordered fields.
func parseSetFlags(sets []string) ([]store.Field, error) {
	fields := make([]store.Field, 0, len(sets))
	for _, s := range sets {
		name, value, found := strings.Cut(s, "=")
		if !found {
			return nil, store.Usagef("--set %q: expected column=value", s)
		}
		fields = append(fields, store.Field{Name: name, Value: value})
	}
	return fields, nil
}

// summarizeRow renders a row's non-empty cells as "col=value" pairs for
// confirmation messages and audit lines.
func summarizeRow(schema models.Schema, row models.Row) string {
	parts := make([]string, 0, len(row))
	for i, col := range schema {
		if i < len(row) && !row[i].Empty() {
			parts = append(parts, fmt.Sprintf("%s=%s", col.Name, row[i].Raw))
		}
	}
	return strings.Join(parts, " ")
}
