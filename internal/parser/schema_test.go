package parser

import (
	"testing"

	"github.com/Kai-Rice/study-log/internal/models"
)

// TestDetectSchema tests column type inference over group data
func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name      string
		headers   []string
		records   [][]string
		wantTypes []models.ColumnType
	}{
		{
			name:    "numeric column with mixed int and float",
			headers: []string{"date", "minutes"},
			records: [][]string{
				{"2024-01-01", "1"},
				{"2024-01-02", "2"},
				{"2024-01-03", "3.5"},
			},
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeNumber},
		},
		{
			name:    "one non-numeric value makes the column text",
			headers: []string{"date", "minutes"},
			records: [][]string{
				{"2024-01-01", "1"},
				{"2024-01-02", "a"},
				{"2024-01-03", "3"},
			},
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeText},
		},
		{
			name:    "first column is always date even when numeric",
			headers: []string{"day", "minutes"},
			records: [][]string{
				{"20240101", "30"},
			},
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeNumber},
		},
		{
			name:    "empty values are ignored for inference",
			headers: []string{"date", "minutes", "subject"},
			records: [][]string{
				{"2024-01-01", "", "math"},
				{"2024-01-02", "45", ""},
			},
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeNumber, models.TypeText},
		},
		{
			name:    "column with no values at all stays text",
			headers: []string{"date", "notes"},
			records: [][]string{
				{"2024-01-01", ""},
			},
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeText},
		},
		{
			name:      "no data rows",
			headers:   []string{"date", "minutes"},
			records:   nil,
			wantTypes: []models.ColumnType{models.TypeDate, models.TypeText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := DetectSchema(tt.headers, tt.records)

			if len(schema) != len(tt.wantTypes) {
				t.Fatalf("DetectSchema() returned %d columns, want %d", len(schema), len(tt.wantTypes))
			}

			for i, want := range tt.wantTypes {
				if schema[i].Type != want {
					t.Errorf("column %q type = %s, want %s", schema[i].Name, schema[i].Type, want)
				}
				if schema[i].Name != tt.headers[i] {
					t.Errorf("column %d name = %q, want %q", i, schema[i].Name, tt.headers[i])
				}
			}
		})
	}
}

// TestInferValueType tests type inference for schema-extending values
func TestInferValueType(t *testing.T) {
	tests := []struct {
		value string
		want  models.ColumnType
	}{
		{"30", models.TypeNumber},
		{"3.5", models.TypeNumber},
		{"-2", models.TypeNumber},
		{"math", models.TypeText},
		{"", models.TypeText},
		{"  42  ", models.TypeNumber},
	}

	for _, tt := range tests {
		if got := InferValueType(tt.value); got != tt.want {
			t.Errorf("InferValueType(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

// TestSanitizeName tests SQL identifier cleanup for the export path
func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"study", "study"},
		{"Deep Work", "deep_work"},
		{"mood-log", "mood_log"},
		{"2024.notes", "col_2024_notes"},
		{"", "unnamed"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.input); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
