package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReadOnlyQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"simple select", "SELECT * FROM study", false},
		{"select with trailing semicolon", "SELECT COUNT(*) FROM study;", false},
		{"cte", "WITH recent AS (SELECT * FROM study) SELECT * FROM recent", false},
		{"explain", "EXPLAIN QUERY PLAN SELECT * FROM study", false},
		{"select with comment", "SELECT minutes FROM study -- just minutes", false},
		{"empty", "   ", true},
		{"comment only", "-- nothing here", true},
		{"insert", "INSERT INTO study VALUES ('2024-01-01', 30)", true},
		{"delete", "DELETE FROM study", true},
		{"drop", "DROP TABLE study", true},
		{"update hidden in subquery", "SELECT * FROM study WHERE id IN (UPDATE study SET minutes = 0)", true},
		{"multiple statements", "SELECT 1; SELECT 2", true},
		{"column named selectively is fine", "SELECT selectively FROM study", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReadOnlyQuery(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReadOnlyQueryPragmas(t *testing.T) {
	valid := []string{
		"PRAGMA table_info(study)",
		"PRAGMA index_list(study)",
		"PRAGMA index_info(idx_study_date)",
		"PRAGMA foreign_key_list(study)",
		"PRAGMA schema_version",
		"PRAGMA user_version",
		"PRAGMA database_list",
		"PRAGMA compile_options",
	}
	for _, pragma := range valid {
		t.Run("valid_"+pragma, func(t *testing.T) {
			assert.NoError(t, ValidateReadOnlyQuery(pragma))
		})
	}

	invalid := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA cache_size = 10000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA evil_setting = 1",
	}
	for _, pragma := range invalid {
		t.Run("invalid_"+pragma, func(t *testing.T) {
			assert.Error(t, ValidateReadOnlyQuery(pragma))
		})
	}
}
