package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kai-Rice/study-log/internal/models"
)

var filterSchema = models.Schema{
	{Name: "date", Type: models.TypeDate},
	{Name: "minutes", Type: models.TypeNumber},
	{Name: "subject", Type: models.TypeText},
}

func mustRow(t *testing.T, date, minutes, subject string) models.Row {
	t.Helper()
	row := make(models.Row, len(filterSchema))
	for i, raw := range []string{date, minutes, subject} {
		v, err := models.ParseValue(raw, filterSchema[i].Type)
		require.NoError(t, err)
		row[i] = v
	}
	return row
}

func TestParseFilterMatch(t *testing.T) {
	row := func(t *testing.T) models.Row { return mustRow(t, "2024-01-02", "45", "math") }

	tests := []struct {
		expr string
		want bool
	}{
		{"subject=math", true},
		{"subject=bio", false},
		{"subject!=bio", true},
		{"minutes=45", true},
		{"minutes>40", true},
		{"minutes>45", false},
		{"minutes>=45", true},
		{"minutes<45", false},
		{"minutes<=45", true},
		{"minutes!=30", true},
		{"minutes between 40 and 50", true},
		{"minutes between 46 and 50", false},
		{"date=2024-01-02", true},
		{"date>2024-01-01", true},
		{"date<2024-01-01", false},
		{"date between 2024-01-01 and 2024-01-02", true},
		{"date BETWEEN 2024-01-01 AND 2024-01-02", true},
		{"date between 2024-01-03 and 2024-01-04", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := ParseFilter(tt.expr, filterSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(row(t)))
		})
	}
}

func TestFilterEmptyCellNeverMatches(t *testing.T) {
	row := mustRow(t, "2024-01-02", "", "")

	for _, expr := range []string{"minutes>0", "minutes<100", "subject!=math", "minutes between 0 and 100"} {
		f, err := ParseFilter(expr, filterSchema)
		require.NoError(t, err)
		assert.False(t, f.Match(row), "expr %q matched an empty cell", expr)
	}
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		wantUsage  bool
		wantColumn string
	}{
		{name: "empty expression", expr: "   ", wantUsage: true},
		{name: "no operator", expr: "minutes", wantUsage: true},
		{name: "missing value", expr: "minutes>", wantUsage: true},
		{name: "between missing high bound", expr: "minutes between 1 and ", wantUsage: true},
		{name: "unknown column", expr: "mood=7", wantColumn: "mood"},
		{name: "ordering on text column", expr: "subject>abc", wantColumn: "subject"},
		{name: "between on text column", expr: "subject between a and b", wantColumn: "subject"},
		{name: "non-numeric bound", expr: "minutes>abc", wantColumn: "minutes"},
		{name: "non-date bound", expr: "date>soon", wantColumn: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.expr, filterSchema)
			require.Error(t, err)

			if tt.wantUsage {
				var uerr *UsageError
				assert.ErrorAs(t, err, &uerr)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantColumn, verr.Column)
		})
	}
}

func TestParseFiltersAndsTogether(t *testing.T) {
	pred, err := ParseFilters([]string{"minutes>30", "subject=math"}, filterSchema)
	require.NoError(t, err)

	assert.True(t, pred(mustRow(t, "2024-01-02", "45", "math")))
	assert.False(t, pred(mustRow(t, "2024-01-02", "45", "bio")))
	assert.False(t, pred(mustRow(t, "2024-01-02", "30", "math")))
}

func TestParseFiltersEmptyListMatchesAll(t *testing.T) {
	pred, err := ParseFilters(nil, filterSchema)
	require.NoError(t, err)
	assert.Nil(t, pred)
}
