package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ColumnListingID         = "Listing ID"
	ColumnBaseRate          = "Base rate"
	ColumnCleaningFee       = "Cleaning fee value"
	ColumnRentalRevenue     = "rentalRevenue"
	ColumnCalculatedRevenue = "Calculated Revenue"
	ColumnValidationStatus  = "Validation Status"
)

// RequiredValidationColumns must all be present before reconciliation runs.
var RequiredValidationColumns = []string{
	ColumnListingID,
	ColumnBaseRate,
	ColumnCleaningFee,
	ColumnRentalRevenue,
}

// DiscrepancyColumns is the projection shown for mismatched rows.
var DiscrepancyColumns = []string{
	ColumnListingID,
	ColumnBaseRate,
	ColumnCleaningFee,
	ColumnRentalRevenue,
	ColumnCalculatedRevenue,
}

// ValidationResult is the outcome of reconciling a table. Valid and
// Discrepancies partition the rows of Table.
type ValidationResult struct {
	Table         *Table
	Valid         *Table
	Discrepancies *Table
}

func (r *ValidationResult) DiscrepancyCount() int {
	return r.Discrepancies.Len()
}

func (r *ValidationResult) AllValid() bool {
	return r.Discrepancies.Empty()
}

// ValidationRun is the persisted summary of one validation pass.
type ValidationRun struct {
	ID               uuid.UUID
	FromDate         time.Time
	ToDate           time.Time
	TotalRows        int
	DiscrepancyCount int
	RemovedColumns   []string
	MissingColumns   []string
	CreatedAt        time.Time
}
