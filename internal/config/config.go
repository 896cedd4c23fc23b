// Package config provides the explicit configuration passed into the group
// store, event log, and export layers: filesystem paths plus the tool's
// version string. Defaults are layered under environment overrides, so a
// plain invocation works from any directory holding a data/ folder.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName is the CLI binary name used in messages and the history file.
	AppName = "study-log"

	// Version is the semantic version of the tool.
	Version = "0.9.0"

	// DefaultDataDir holds one CSV file per group.
	DefaultDataDir = "data"

	// DefaultHistoryFile is the plain-text audit trail.
	DefaultHistoryFile = "log.txt"

	// DefaultDatabaseFile is the SQLite database written by the export
	// command and read by the query command.
	DefaultDatabaseFile = "study_log.db"

	// GroupDescription is the help text for the --group flag.
	GroupDescription = "group name (one CSV file per group under the data directory)"

	// DatabaseDescription is the help text for the --db flag.
	DatabaseDescription = "path to the SQLite database file"

	// envPrefix namespaces the environment overrides: STUDYLOG_DATA_DIR,
	// STUDYLOG_HISTORY_FILE, STUDYLOG_DATABASE_FILE.
	envPrefix = "STUDYLOG_"
)

// Config enumerates the paths the tool reads and writes. It is constructed
// once in the CLI layer and handed to every component explicitly.
type Config struct {
	DataDir      string `koanf:"data_dir"`
	HistoryFile  string `koanf:"history_file"`
	DatabaseFile string `koanf:"database_file"`
}

// Load builds the configuration from defaults and environment variables.
// Priority, lowest first: built-in defaults, the bare DATA_DIR variable
// (the documented extension hook for relocating group data), then
// STUDYLOG_*-prefixed variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":      DefaultDataDir,
		"history_file":  DefaultHistoryFile,
		"database_file": DefaultDatabaseFile,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{
			"data_dir": dataDir,
		}, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply DATA_DIR: %w", err)
		}
	}

	// Transform: STUDYLOG_DATA_DIR -> data_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}
