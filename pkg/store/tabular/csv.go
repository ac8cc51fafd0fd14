// Package tabular converts between delimited text and in-memory tables.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a header row followed by data rows separated by delim. Rows
// shorter than the header are padded with empty cells.
func Parse(r io.Reader, delim rune) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = delim == '\t'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Table{Columns: []string{}, Rows: [][]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &domain.Table{Columns: header, Rows: [][]string{}}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", line, len(record), len(header))
		}
		if len(record) < len(header) {
			record = append(record, make([]string, len(header)-len(record))...)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ParseBytes is Parse over an in-memory body.
func ParseBytes(body []byte, delim rune) (*domain.Table, error) {
	return Parse(bytes.NewReader(body), delim)
}

// Write emits a header row and one line per row, comma separated, with no
// index column.
func Write(w io.Writer, t *domain.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for col := range t.Columns {
			cells[col] = t.Cell(row, col)
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Encode renders t as comma separated bytes.
func Encode(t *domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
