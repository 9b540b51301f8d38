// Package storage handles project persistence: a JSONL file is the source of
// truth and a SQLite database is a rebuildable query cache.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sparkforge/spark/internal/project"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading one JSONL line.
// A record carries four blueprints and an optional mind map, so lines run long.
const MaxJSONLLineCapacity = 4 * 1024 * 1024

// ReadAllRecords reads all project records from a JSONL file.
// Returns an error if any record fails structural validation (fail-fast).
func ReadAllRecords(path string) ([]project.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file reads as empty
		}
		return nil, fmt.Errorf("opening projects file: %w", err)
	}
	defer f.Close()

	var records []project.Record
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r project.Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := r.ValidateForCreate(); err != nil {
			return nil, fmt.Errorf("invalid project at line %d: %w", lineNum, err)
		}

		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading projects file: %w", err)
	}

	return records, nil
}

// writeRecordJSONL marshals a record to JSON and writes it as a JSONL line.
func writeRecordJSONL(w io.Writer, r project.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding project %s: %w", r.ID, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing project %s: %w", r.ID, err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

// AppendRecord adds a record to the end of a JSONL file.
func AppendRecord(path string, r project.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening projects file for append: %w", err)
	}
	defer f.Close()

	return writeRecordJSONL(f, r)
}

// WriteAllRecords writes all records to a JSONL file, replacing existing content.
// It writes to a sibling temp file first and renames it into place.
func WriteAllRecords(path string, records []project.Record) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating projects file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		if err := writeRecordJSONL(w, r); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flushing projects file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing projects file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing projects file: %w", err)
	}
	return nil
}

// FindRecordByID searches for a record by its ID in an in-memory slice.
// Returns the index and true if found, -1 and false otherwise.
func FindRecordByID(records []project.Record, id string) (int, bool) {
	for i, r := range records {
		if r.ID == id {
			return i, true
		}
	}
	return -1, false
}

// UpsertRecordInSlice adds or updates a record in an in-memory slice.
// Returns the updated slice and true if the record was updated, false if added.
func UpsertRecordInSlice(records []project.Record, r project.Record) ([]project.Record, bool) {
	idx, found := FindRecordByID(records, r.ID)
	if found {
		records[idx] = r
		return records, true
	}
	return append(records, r), false
}

// DeleteRecordFromSlice removes a record from an in-memory slice, keeping the
// order of the remaining records.
func DeleteRecordFromSlice(records []project.Record, id string) ([]project.Record, bool) {
	idx, found := FindRecordByID(records, id)
	if !found {
		return records, false
	}
	return append(records[:idx], records[idx+1:]...), true
}
