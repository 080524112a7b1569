// Package reader materializes spreadsheet exports (CSV and XLSX) into
// in-memory tables for the parse engine.
package reader

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/invoiceflow/ingest-cli/internal/engine"
)

// ErrUnsupportedType is returned for file extensions the reader does not handle.
var ErrUnsupportedType = eris.New("unsupported file type, expected .csv or .xlsx")

// ReadFile materializes the file at path into a table, dispatching on the
// file extension.
func ReadFile(path string) (engine.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return engine.Table{}, eris.Wrap(err, "reader: open file")
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return engine.Table{}, ErrUnsupportedType
	}
}

// tableFromRecords builds a table from raw rows. The first non-blank row is
// the header; duplicate header names get a numeric suffix so each column
// keeps its own cells. Fully blank rows are dropped, short rows are padded
// with empty cells.
func tableFromRecords(records [][]string) engine.Table {
	var t engine.Table
	for _, record := range records {
		if blankRecord(record) {
			continue
		}
		if t.Headers == nil {
			t.Headers = uniqueHeaders(record)
			continue
		}
		row := make(engine.Row, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// uniqueHeaders trims header cells and disambiguates duplicates with a
// ".N" suffix, the way pandas-style loaders name repeated columns.
func uniqueHeaders(record []string) []string {
	headers := make([]string, 0, len(record))
	seen := make(map[string]int, len(record))
	for _, cell := range record {
		h := strings.TrimSpace(cell)
		if n, ok := seen[h]; ok {
			// The suffixed name may itself collide with a header that
			// appears literally in the file (e.g. "a", "a", "a.1"), so
			// keep bumping the suffix until it is free.
			candidate := h + "." + strconv.Itoa(n)
			for _, taken := seen[candidate]; taken; _, taken = seen[candidate] {
				n++
				candidate = h + "." + strconv.Itoa(n)
			}
			seen[h] = n + 1
			seen[candidate] = 1
			h = candidate
		} else {
			seen[h] = 1
		}
		headers = append(headers, h)
	}
	return headers
}
