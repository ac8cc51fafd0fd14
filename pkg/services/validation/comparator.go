package validation

import (
	"errors"
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var errNotNumeric = errors.New("not a number")

// Comparator reconciles one row. It returns the rendered calculated revenue
// and whether it matches the reported value.
type Comparator interface {
	Reconcile(baseRate, cleaningFee, reported string) (calculated string, valid bool)
}

// ExactFloat adds the two cells as float64 and requires bit-for-bit equality
// with the reported cell. Missing or non-numeric cells never match.
type ExactFloat struct{}

func (ExactFloat) Reconcile(baseRate, cleaningFee, reported string) (string, bool) {
	base, _ := domain.ParseNumber(baseRate)
	fee, _ := domain.ParseNumber(cleaningFee)
	want, _ := domain.ParseNumber(reported)

	calculated := base + fee
	return domain.FormatNumber(calculated), calculated == want
}

// DecimalTolerance adds the cells as decimals and accepts a difference of at
// most Tolerance. A zero tolerance is exact decimal equality.
type DecimalTolerance struct {
	Tolerance decimal.Decimal
}

func (d DecimalTolerance) Reconcile(baseRate, cleaningFee, reported string) (string, bool) {
	base, errBase := parseDecimal(baseRate)
	fee, errFee := parseDecimal(cleaningFee)
	if errBase != nil || errFee != nil {
		return "", false
	}
	calculated := base.Add(fee)

	want, err := parseDecimal(reported)
	if err != nil {
		return calculated.String(), false
	}
	return calculated.String(), calculated.Sub(want).Abs().LessThanOrEqual(d.Tolerance.Abs())
}

func parseDecimal(cell string) (decimal.Decimal, error) {
	if _, ok := domain.ParseNumber(cell); !ok {
		return decimal.Decimal{}, errNotNumeric
	}
	return decimal.NewFromString(strings.TrimSpace(cell))
}
