// Package parser provides CSV reading/writing and column type inference
// for group files.
package parser

import (
	"strconv"
	"strings"

	"github.com/Kai-Rice/study-log/internal/models"
)

// DetectSchema infers the column types for a group from its header and data
// rows. The first column is always the timestamp column and is typed Date
// unconditionally. A later column is typed Number when it has at least one
// non-empty value and every non-empty value parses as a number; otherwise it
// is Text. The result is computed once at load time and cached on the group.
func DetectSchema(headers []string, records [][]string) models.Schema {
	schema := make(models.Schema, len(headers))

	for i, header := range headers {
		schema[i] = models.Column{Name: header, Type: models.TypeText}
		if i == 0 {
			schema[i].Type = models.TypeDate
			continue
		}
		if columnIsNumeric(records, i) {
			schema[i].Type = models.TypeNumber
		}
	}

	return schema
}

// columnIsNumeric reports whether every non-empty value in the column parses
// as a number. Columns with no values at all stay Text.
func columnIsNumeric(records [][]string, columnIndex int) bool {
	seen := 0

	for _, record := range records {
		if columnIndex >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[columnIndex])
		if value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return false
		}
		seen++
	}

	return seen > 0
}

// InferValueType returns the type a brand-new column takes from its first
// logged value. Used when a log operation extends the schema.
func InferValueType(value string) models.ColumnType {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.TypeText
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return models.TypeNumber
	}
	return models.TypeText
}

// SanitizeName cleans a group or column name into an SQL-safe identifier for
// the export path.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ToLower(name)

	// Identifiers must not start with a digit
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		name = "col_" + name
	}

	if name == "" {
		name = "unnamed"
	}

	return name
}
