// Package store implements the group store: loading a group's CSV into typed
// in-memory rows, answering queries against it, appending new entries, and
// writing it back. A Group is a transient, load-on-demand cache; the CSV file
// is the sole persistent owner of the data. There is no file locking, so
// concurrent invocations may race; single-writer-at-a-time is by convention.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Kai-Rice/study-log/internal/models"
	"github.com/Kai-Rice/study-log/internal/parser"
)

// DefaultDateColumn is the name given to the timestamp column when a log
// operation creates a brand-new group.
const DefaultDateColumn = "date"

// Store reads and writes group CSV files under a single data directory.
type Store struct {
	dataDir string
}

// New creates a Store bound to the given data directory.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Path returns the CSV path for the named group.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dataDir, name+".csv")
}

// Group is a named collection of rows backed by one CSV file. Schema and
// Rows are populated at load; dirty tracks divergence from disk.
type Group struct {
	Name   string
	Schema models.Schema
	Rows   []models.Row

	dirty bool
}

// Dirty reports whether the in-memory group has diverged from the file and
// needs a save.
func (g *Group) Dirty() bool {
	return g.dirty
}

// Load reads the named group's CSV into memory. A missing file yields an
// empty group whose columns are undefined until the first write. A file that
// exists but is not valid CSV (ragged rows, empty or unparsable timestamp
// column) is a StorageError.
func (s *Store) Load(name string) (*Group, error) {
	path := s.Path(name)

	headers, records, err := parser.ReadCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Group{Name: name}, nil
		}
		return nil, &StorageError{Path: path, Err: err}
	}

	schema := parser.DetectSchema(headers, records)

	rows := make([]models.Row, 0, len(records))
	for n, record := range records {
		row := make(models.Row, len(schema))
		for i, col := range schema {
			// Every row must carry a timestamp; other columns may be empty.
			if i == 0 && record[i] == "" {
				return nil, &StorageError{
					Path: path,
					Err:  fmt.Errorf("line %d: column %q: timestamp is empty", n+2, col.Name),
				}
			}
			v, err := models.ParseValue(record[i], col.Type)
			if err != nil {
				// Only the timestamp column can fail here: numeric columns
				// were inferred from these same values.
				return nil, &StorageError{
					Path: path,
					Err:  fmt.Errorf("line %d: column %q: value %q is %v", n+2, col.Name, record[i], err),
				}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	return &Group{Name: name, Schema: schema, Rows: rows}, nil
}

// Save writes the group back to its CSV path, header first, preserving the
// in-memory column order. The replace is atomic so an interrupted save never
// leaves a truncated file behind.
func (s *Store) Save(g *Group) error {
	if len(g.Schema) == 0 {
		return nil
	}

	path := s.Path(g.Name)
	records := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		records[i] = row.Strings()
	}

	if err := parser.WriteCSV(path, g.Schema.Names(), records); err != nil {
		return &StorageError{Path: path, Err: err}
	}

	g.dirty = false
	return nil
}

// List returns the sorted names of all groups under the data directory. A
// missing data directory means no groups yet.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Path: s.dataDir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".csv"))
	}

	sort.Strings(names)
	return names, nil
}

// Field is one column=value pair provided to a log operation. Order matters
// when the pairs define a new group's schema.
type Field struct {
	Name  string
	Value string
}

// Log validates the provided values against the group's column types and
// appends a new row, timestamp first. The timestamp defaults to today unless
// date is non-empty or the pairs include the timestamp column explicitly.
//
// On an empty group the provided columns define the schema. A pair naming a
// column the group has never seen extends the schema; existing rows are
// back-filled with an empty value. A value that does not coerce to its
// column's type fails with a ValidationError naming the column, and the
// group is left untouched.
func (g *Group) Log(fields []Field, date string) (models.Row, error) {
	if len(fields) == 0 {
		return nil, Usagef("at least one column=value pair is required")
	}

	// Work on a copy of the schema so a failed validation cannot leave a
	// half-extended group behind.
	schema := append(models.Schema(nil), g.Schema...)
	if len(schema) == 0 {
		schema = models.Schema{{Name: DefaultDateColumn, Type: models.TypeDate}}
	}
	dateCol := schema[0].Name

	raw := make(map[string]string, len(fields))
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, Usagef("empty column name in %q=%q", f.Name, f.Value)
		}
		if _, dup := raw[name]; dup {
			return nil, Usagef("column %q given more than once", name)
		}
		raw[name] = f.Value

		if schema.Index(name) == -1 {
			schema = append(schema, models.Column{Name: name, Type: parser.InferValueType(f.Value)})
		}
	}

	// The timestamp may arrive via the date argument or as an explicit pair
	// named after the timestamp column, but not both.
	if ts, ok := raw[dateCol]; ok {
		if date != "" {
			return nil, Usagef("date given both as an argument and as column %q", dateCol)
		}
		date = ts
		delete(raw, dateCol)
	}
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}

	row := make(models.Row, len(schema))
	for i, col := range schema {
		cell := raw[col.Name]
		if i == 0 {
			cell = date
		}
		v, err := models.ParseValue(cell, col.Type)
		if err != nil {
			return nil, &ValidationError{Column: col.Name, Msg: fmt.Sprintf("value %q is %v", cell, err)}
		}
		row[i] = v
	}

	// Commit: back-fill prior rows for any new columns, then append.
	if extra := len(schema) - len(g.Schema); extra > 0 && len(g.Schema) > 0 {
		for i, r := range g.Rows {
			padded := append(models.Row(nil), r...)
			for j := len(r); j < len(schema); j++ {
				padded = append(padded, models.Value{Type: schema[j].Type})
			}
			g.Rows[i] = padded
		}
	}
	g.Schema = schema
	g.Rows = append(g.Rows, row)
	g.dirty = true

	return row, nil
}
