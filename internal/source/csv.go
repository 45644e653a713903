// Package source loads measurement rows and label tables from disk.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// ErrNoTimestamp is returned when a header lacks the timestamp column.
var ErrNoTimestamp = errors.New("missing timestamp column")

func LoadCSV(path string) ([]core.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV reads a header line followed by data rows. Short rows are padded
// with empty values, which later parse as invalid samples.
func ReadCSV(r io.Reader) ([]core.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []core.RawRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, core.NewRawRow(header, rec))
	}
	return rows, nil
}

func checkHeader(header []string) error {
	for _, h := range header {
		if h == core.TimestampField {
			return nil
		}
	}
	return fmt.Errorf("header %v: %w", header, ErrNoTimestamp)
}
