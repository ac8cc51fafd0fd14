// Package export renders tables as downloadable files and ships them to
// object storage.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/store/tabular"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// DiscrepanciesFileName is the download name of the discrepancy subset.
const DiscrepanciesFileName = "rental_revenue_discrepancies"

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/csv"
}

// FileName appends the format extension to base.
func (f Format) FileName(base string) string {
	return base + "." + string(f)
}

// Render writes t to w in the given format. title heads the PDF and names the
// XLSX sheet.
func Render(w io.Writer, f Format, title string, t *domain.Table) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, title, t)
	case FormatPDF:
		return WritePDF(w, title, t)
	}
	return tabular.Write(w, t)
}
