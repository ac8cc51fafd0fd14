package export

import (
	"fmt"
	"io"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 277.0
	rowHeight   = 6.0
	maxColWidth = 60.0
)

var (
	headerColor     = []int{44, 62, 80}
	headerTextColor = []int{255, 255, 255}
	bodyTextColor   = []int{33, 33, 33}
)

// WritePDF renders t as a landscape table, repeating the header on every page.
func WritePDF(w io.Writer, title string, t *domain.Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := columnWidths(t)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		for i, c := range t.Columns {
			pdf.CellFormat(widths[i], rowHeight+1, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%d rows - generated %s", t.Len(), time.Now().UTC().Format(time.RFC1123)))
	pdf.Ln(8)
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom-12 {
			pdf.AddPage()
			header()
		}
		for col := range t.Columns {
			align := "L"
			if _, ok := domain.ParseNumber(t.Cell(row, col)); ok {
				align = "R"
			}
			pdf.CellFormat(widths[col], rowHeight, tr(t.Cell(row, col)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func columnWidths(t *domain.Table) []float64 {
	widths := make([]float64, len(t.Columns))
	if len(t.Columns) == 0 {
		return widths
	}
	w := pageWidth / float64(len(t.Columns))
	if w > maxColWidth {
		w = maxColWidth
	}
	for i := range widths {
		widths[i] = w
	}
	return widths
}
