package store

import (
	"fmt"

	"github.com/Kai-Rice/study-log/internal/models"
)

// UsageError reports a bad invocation: malformed --set or --filter syntax,
// an unknown aggregation op, and similar caller mistakes. Mapped to exit
// code 2 by the CLI.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "usage error: " + e.Msg
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports a value that does not match its column's inferred
// type, or a reference to a column the group does not have. Always names the
// offending column.
type ValidationError struct {
	Column string
	Msg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: column %q: %s", e.Column, e.Msg)
}

// StorageError reports an unreadable, unwritable, or malformed group CSV.
// The error propagates to the caller; the file is never silently repaired.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ColumnTypeError reports an aggregation over a non-numeric column.
type ColumnTypeError struct {
	Column string
	Type   models.ColumnType
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("type error: column %q is %s, aggregation needs NUMBER", e.Column, e.Type)
}
