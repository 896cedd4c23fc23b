package models

import (
	"fmt"
	"time"
)

// HistoryEntry is one line of the audit trail: a timestamp plus a free-text
// message. Entries are append-only and ordered by file position.
type HistoryEntry struct {
	Timestamp time.Time
	Message   string
}

// String returns the entry in its on-disk line format.
func (e HistoryEntry) String() string {
	if e.Timestamp.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Timestamp.UTC().Format(time.RFC3339), e.Message)
}
