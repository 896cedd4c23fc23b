// Package events provides the append-only audit trail of tool invocations:
// plain text, one timestamped line per entry, read back in file order.
package events

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Kai-Rice/study-log/internal/models"
)

// Log appends to and reads from a single history file.
type Log struct {
	path string
}

// New creates a Log bound to the given history file path. The file is
// created on first Record.
func New(path string) *Log {
	return &Log{path: path}
}

// Record appends a "<timestamp> <message>" line. Timestamps are UTC
// RFC 3339 with second precision. The file handle is released on every exit
// path, including write failure.
func (l *Log) Record(message string) error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	entry := models.HistoryEntry{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Message:   message,
	}
	if _, err := fmt.Fprintln(file, entry.String()); err != nil {
		return fmt.Errorf("failed to append to history file: %w", err)
	}

	return nil
}

// History returns the most recent limit entries in chronological order, or
// all entries when limit <= 0. A missing history file means no history yet.
func (l *Log) History(limit int) ([]models.HistoryEntry, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]models.HistoryEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, parseLine(line))
	}

	return entries, nil
}

// parseLine splits a history line into timestamp and message. Lines that do
// not start with a parseable timestamp are kept whole as the message, so a
// hand-edited history file still displays.
func parseLine(line string) models.HistoryEntry {
	ts, msg, found := strings.Cut(line, " ")
	if found {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return models.HistoryEntry{Timestamp: t, Message: msg}
		}
	}
	return models.HistoryEntry{Message: line}
}
