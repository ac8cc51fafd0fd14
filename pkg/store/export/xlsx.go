package export

import (
	"fmt"
	"io"
	"math"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX writes one sheet with a bold header row. Numeric cells are stored
// as numbers so spreadsheets can sum them.
func WriteXLSX(w io.Writer, sheet string, t *domain.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet = sheetName(sheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for col := range t.Columns {
			raw := t.Cell(row, col)
			if v, ok := domain.ParseNumber(raw); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
				cells[col] = v
			} else {
				cells[col] = raw
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if len(t.Columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func sheetName(title string) string {
	if title == "" {
		return "Report"
	}
	r := []rune(title)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}
