package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV reads a group CSV file and returns the header row and the raw data
// records. The reader keeps the default FieldsPerRecord behavior, so a row
// whose width differs from the header is an error rather than being silently
// padded or truncated.
func ReadCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	var headers []string
	var records [][]string
	lineNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNumber+1, err)
		}

		lineNumber++
		if lineNumber == 1 {
			headers = record
			continue
		}
		records = append(records, record)
	}

	return headers, records, nil
}

// WriteCSV writes header + records to path, replacing any previous content.
// The write is atomic from the caller's perspective: content goes to a temp
// file in the destination directory first and is renamed over the target, so
// an interrupted save never leaves a truncated file in place of a valid one.
func WriteCSV(path string, headers []string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(headers)
	if writeErr == nil {
		writeErr = writer.WriteAll(records)
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write CSV: %w", writeErr)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
