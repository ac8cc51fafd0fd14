package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/services/validation"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	boldCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	boldRed   = color.New(color.FgRed, color.Bold).SprintFunc()
	boldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Reporter renders dashboard pages to a terminal.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.writer, format, a...)
}

func (r *Reporter) Table(t *domain.Table) error {
	data := pterm.TableData{t.Columns}
	for row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for col := range t.Columns {
			cells[col] = t.Cell(row, col)
		}
		data = append(data, cells)
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	r.printf("%s\n", rendered)
	return nil
}

func (r *Reporter) Report(page *dashboard.ReportPage) error {
	r.printf("%s\n", boldCyan(page.Variant.Title()))
	r.printf("%s", pterm.Success.Sprintfln("CSV data loaded successfully!"))
	r.printf("Total Rows: %d\n", page.TotalRows)
	if page.Truncated {
		r.printf("%s", pterm.Warning.Sprintfln("The dataset is too large. Displaying the first %d rows.", page.View.Len()))
	}
	if err := r.Table(page.View); err != nil {
		return err
	}
	r.answer(page.Answer, page.AgentErr)
	return nil
}

func (r *Reporter) Validation(page *dashboard.ValidationPage) error {
	r.printf("%s\n", boldCyan("Rental Revenue Validation"))
	r.printf("Total Rows: %d\n", page.Table.Len())
	r.printf("Columns removed: %s\n", formatList(page.RemovedColumns))

	if page.Result == nil {
		r.printf("%s", pterm.Error.Sprintfln("%s", (&domain.SchemaMismatchError{Missing: page.MissingColumns}).Error()))
		if err := r.Table(page.Filtered); err != nil {
			return err
		}
		r.answer(page.Answer, page.AgentErr)
		return nil
	}

	if page.Result.AllValid() {
		r.printf("%s\n", boldGreen("All records are valid! No discrepancies found."))
	} else {
		r.printf("%s\n", boldRed(fmt.Sprintf("Discrepancies found in %d rows!", page.Result.DiscrepancyCount())))
		if err := r.Table(validation.DiscrepancyView(page.Result)); err != nil {
			return err
		}
	}
	r.answer(page.Answer, page.AgentErr)
	return nil
}

func (r *Reporter) Runs(runs []domain.ValidationRun) error {
	if len(runs) == 0 {
		r.printf("%s", pterm.Info.Sprintfln("No validation runs recorded."))
		return nil
	}
	t := domain.NewTable([]string{"Run", "From", "To", "Rows", "Discrepancies", "Removed", "Recorded"}, nil)
	for _, run := range runs {
		t.Rows = append(t.Rows, []string{
			run.ID.String(),
			run.FromDate.Format(domain.DateLayout),
			run.ToDate.Format(domain.DateLayout),
			fmt.Sprint(run.TotalRows),
			fmt.Sprint(run.DiscrepancyCount),
			strings.Join(run.RemovedColumns, ", "),
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return r.Table(t)
}

func (r *Reporter) Channels() error {
	t := domain.NewTable([]string{"ID", "Channel"}, nil)
	for _, c := range domain.ChannelOrder {
		t.Rows = append(t.Rows, []string{fmt.Sprint(int(c)), c.Label()})
	}
	return r.Table(t)
}

// Saved reports a file written to disk or object storage.
func (r *Reporter) Saved(location string) {
	r.printf("%s", pterm.Success.Sprintfln("Saved %s", location))
}

func (r *Reporter) answer(answer string, err error) {
	switch {
	case err != nil:
		r.printf("%s", pterm.Error.Sprintfln("%v", err))
	case answer != "":
		r.printf("\n%s\n%s\n", boldCyan("Answer"), answer)
	}
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
