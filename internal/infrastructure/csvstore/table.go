package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wooport/wooport/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a CSV file loaded as header-keyed rows
type table struct {
	Path    string
	Headers []string
	Rows    []map[string]string
}

// requireColumns reports the first required header missing from the table
func (t table) requireColumns(required ...string) error {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("%w: %q in %s", domain.ErrMissingColumn, col, t.Path)
		}
	}
	return nil
}

// loadTable reads a whole CSV file. Short rows are padded with empty values.
func loadTable(path string) (table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return table{}, err
	}
	b = bytes.TrimPrefix(b, utf8BOM)

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table{Path: path}, nil
	}
	if err != nil {
		return table{}, fmt.Errorf("read header of %s: %w", path, err)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return table{Path: path, Headers: headers, Rows: rows}, nil
}

// writeTable writes a header and rows, creating the parent directory if needed
func writeTable(path string, headers []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
