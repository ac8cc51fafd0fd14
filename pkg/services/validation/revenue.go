// Package validation reconciles the rental revenue reported for each
// reservation against its base rate plus cleaning fee.
package validation

import (
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/table"
)

// MissingColumns lists the required columns absent from t, in declaration order.
func MissingColumns(t *domain.Table) []string {
	var missing []string
	for _, name := range domain.RequiredValidationColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate appends Calculated Revenue and Validation Status to a copy of t and
// partitions its rows. A nil comparator means ExactFloat.
func Validate(t *domain.Table, cmp Comparator) (*domain.ValidationResult, error) {
	if missing := MissingColumns(t); len(missing) > 0 {
		return nil, &domain.SchemaMismatchError{Missing: missing}
	}
	if cmp == nil {
		cmp = ExactFloat{}
	}

	baseCol := t.ColumnIndex(domain.ColumnBaseRate)
	feeCol := t.ColumnIndex(domain.ColumnCleaningFee)
	revenueCol := t.ColumnIndex(domain.ColumnRentalRevenue)

	augmented := &domain.Table{
		Columns: append(append([]string(nil), t.Columns...),
			domain.ColumnCalculatedRevenue, domain.ColumnValidationStatus),
		Rows: make([][]string, len(t.Rows)),
	}
	valid := make([]bool, len(t.Rows))
	for row := range t.Rows {
		calculated, ok := cmp.Reconcile(t.Cell(row, baseCol), t.Cell(row, feeCol), t.Cell(row, revenueCol))
		valid[row] = ok

		cells := make([]string, len(t.Columns), len(t.Columns)+2)
		for col := range t.Columns {
			cells[col] = t.Cell(row, col)
		}
		augmented.Rows[row] = append(cells, calculated, domain.FormatBool(ok))
	}

	return &domain.ValidationResult{
		Table:         augmented,
		Valid:         table.Filter(augmented, func(row int) bool { return valid[row] }),
		Discrepancies: table.Filter(augmented, func(row int) bool { return !valid[row] }),
	}, nil
}

// DiscrepancyView projects discrepant rows onto the columns shown to users.
func DiscrepancyView(r *domain.ValidationResult) *domain.Table {
	return table.Select(r.Discrepancies, domain.DiscrepancyColumns)
}
