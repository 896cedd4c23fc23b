package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestReadCSV tests reading group files into header + raw records
func TestReadCSV(t *testing.T) {
	tests := []struct {
		name        string
		csvContent  string
		wantHeaders []string
		wantRecords int
		wantErr     bool
	}{
		{
			name: "valid group file",
			csvContent: `date,minutes
2024-01-01,30
2024-01-02,45`,
			wantHeaders: []string{"date", "minutes"},
			wantRecords: 2,
			wantErr:     false,
		},
		{
			name:        "header only",
			csvContent:  "date,minutes\n",
			wantHeaders: []string{"date", "minutes"},
			wantRecords: 0,
			wantErr:     false,
		},
		{
			name:        "empty file",
			csvContent:  "",
			wantHeaders: nil,
			wantRecords: 0,
			wantErr:     false,
		},
		{
			name: "ragged row is rejected",
			csvContent: `date,minutes
2024-01-01,30,extra`,
			wantErr: true,
		},
		{
			name: "short row is rejected",
			csvContent: `date,minutes,subject
2024-01-01,30`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "group.csv")
			if err := os.WriteFile(path, []byte(tt.csvContent), 0o644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			headers, records, err := ReadCSV(path)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCSV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(headers) != len(tt.wantHeaders) {
				t.Errorf("ReadCSV() headers = %v, want %v", headers, tt.wantHeaders)
			}
			if len(records) != tt.wantRecords {
				t.Errorf("ReadCSV() returned %d records, want %d", len(records), tt.wantRecords)
			}
		})
	}
}

// TestReadCSVMissingFile verifies the not-exist error is passed through so
// the store can treat a missing group as empty
func TestReadCSVMissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if !os.IsNotExist(err) {
		t.Errorf("ReadCSV() on missing file error = %v, want os.IsNotExist", err)
	}
}

// TestWriteCSVRoundTrip verifies write-then-read preserves content and order
func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.csv")
	headers := []string{"date", "minutes", "subject"}
	records := [][]string{
		{"2024-01-01", "30", "math"},
		{"2024-01-02", "45", ""},
	}

	if err := WriteCSV(path, headers, records); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	gotHeaders, gotRecords, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if strings.Join(gotHeaders, ",") != strings.Join(headers, ",") {
		t.Errorf("headers = %v, want %v", gotHeaders, headers)
	}
	if len(gotRecords) != len(records) {
		t.Fatalf("got %d records, want %d", len(gotRecords), len(records))
	}
	for i := range records {
		if strings.Join(gotRecords[i], ",") != strings.Join(records[i], ",") {
			t.Errorf("record %d = %v, want %v", i, gotRecords[i], records[i])
		}
	}
}

// TestWriteCSVCreatesDataDir verifies the data directory is created on first write
func TestWriteCSVCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "study.csv")

	if err := WriteCSV(path, []string{"date", "minutes"}, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist after write: %v", err)
	}
}

// TestWriteCSVLeavesNoTempFiles verifies the atomic write cleans up after itself
func TestWriteCSVLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "study.csv")

	if err := WriteCSV(path, []string{"date"}, [][]string{{"2024-01-01"}}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "study.csv" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only study.csv", names)
	}
}
