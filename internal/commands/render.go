package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Kai-Rice/study-log/internal/store"
)

// renderRecords prints rows either as an aligned table (default) or as
// CSV-like output for piping into other tools.
func renderRecords(w io.Writer, headers []string, records [][]string, format string) error {
	switch format {
	case "", "table":
		renderTable(w, headers, records)
		return nil
	case "csv":
		return renderCSV(w, headers, records)
	default:
		return store.Usagef("unknown format %q (want table or csv)", format)
	}
}

func renderTable(w io.Writer, headers []string, records [][]string) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, record := range records {
		row := make(table.Row, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(records))
}

func renderCSV(w io.Writer, headers []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// resultsToRecords flattens query results into cells in column order.
func resultsToRecords(columns []string, results []map[string]interface{}) [][]string {
	records := make([][]string, 0, len(results))
	for _, result := range results {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(result[col])
		}
		records = append(records, record)
	}
	return records
}

// formatValue renders a scanned SQL value for display.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber renders an aggregation result without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
