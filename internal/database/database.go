// Package database materializes group CSVs into a SQLite database for ad-hoc
// SQL analysis. The CSV files stay the sole owner of the data; the database
// is a derived artifact and export is repeatable (each table is dropped and
// recreated from the current CSV content).
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Kai-Rice/study-log/internal/models"
	"github.com/Kai-Rice/study-log/internal/parser"
	"github.com/Kai-Rice/study-log/internal/store"
)

// DB interface defines the database operations used by export and query.
// Kept as an interface for easier testing and to leave room for other
// backends.
type DB interface {
	Close() error
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}

type sqliteDB struct {
	*sql.DB
}

// Initialize opens (creating if needed) the SQLite database at dbPath.
func Initialize(dbPath string) (DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &sqliteDB{sqlDB}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ExportGroup writes one group into its own table, columns typed from the
// inferred schema. Any previous table for the group is replaced. Returns the
// number of rows inserted.
func ExportGroup(db DB, g *store.Group) (int64, error) {
	if len(g.Schema) == 0 {
		return 0, nil
	}

	table := parser.SanitizeName(g.Name)

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return 0, fmt.Errorf("failed to drop old table %s: %w", table, err)
	}
	if _, err := db.Exec(createTableSQL(table, g.Schema)); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	columns := make([]string, len(g.Schema))
	placeholders := make([]string, len(g.Schema))
	for i, col := range g.Schema {
		columns[i] = parser.SanitizeName(col.Name)
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	var inserted int64
	for _, row := range g.Rows {
		args := make([]interface{}, len(g.Schema))
		for i := range g.Schema {
			args[i] = sqlValue(row[i])
		}
		if _, err := db.Exec(insertSQL, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert row into %s: %w", table, err)
		}
		inserted++
	}

	return inserted, nil
}

// sqlValue converts a cell to its SQL argument: parsed date/number where the
// column has one, raw text otherwise, NULL for empty cells.
func sqlValue(v models.Value) interface{} {
	if v.Empty() {
		return nil
	}
	switch v.Type {
	case models.TypeDate:
		return v.Date
	case models.TypeNumber:
		return v.Num
	default:
		return v.Raw
	}
}

// createTableSQL builds the CREATE TABLE statement for a group's schema.
// Every column is nullable since group rows routinely have empty cells.
func createTableSQL(table string, schema models.Schema) string {
	columns := make([]string, 0, len(schema)+1)
	columns = append(columns, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, col := range schema {
		columns = append(columns, fmt.Sprintf("%s %s", parser.SanitizeName(col.Name), col.Type.SQLType()))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", table, strings.Join(columns, ",\n  "))
}

// ExecuteQuery executes a SQL query and returns the column names in select
// order plus one map per result row, with []byte values converted to
// strings for display.
func ExecuteQuery(db DB, query string) ([]string, []map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{})
		for i, column := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[column] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return columns, results, nil
}
