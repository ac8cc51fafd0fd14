package table

import (
	"testing"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *domain.Table {
	return domain.NewTable(
		[]string{"Listing ID", "Tax", "Base rate", "Notes", "Fee"},
		[][]string{
			{"1", "0", "100", "", "0.00"},
			{"2", "0.0", "50", "late", ""},
			{"3", "", "75", "", "0"},
		},
	)
}

func TestFilterZeroColumns(t *testing.T) {
	tests := []struct {
		name            string
		input           *domain.Table
		expectedColumns []string
		expectedRemoved []string
	}{
		{
			name:            "drops all-zero and empty-as-zero columns",
			input:           sampleTable(),
			expectedColumns: []string{"Listing ID", "Base rate", "Notes"},
			expectedRemoved: []string{"Tax", "Fee"},
		},
		{
			name: "keeps a column with a single non-zero value",
			input: domain.NewTable(
				[]string{"A", "B"},
				[][]string{{"0", "0"}, {"0", "0.01"}},
			),
			expectedColumns: []string{"B"},
			expectedRemoved: []string{"A"},
		},
		{
			name: "text columns are never zero",
			input: domain.NewTable(
				[]string{"Guest"},
				[][]string{{"zero"}, {"0"}},
			),
			expectedColumns: []string{"Guest"},
			expectedRemoved: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, removed := FilterZeroColumns(tt.input)

			assert.Equal(t, tt.expectedColumns, filtered.Columns)
			assert.Equal(t, tt.expectedRemoved, removed)
			assert.Equal(t, tt.input.Len(), filtered.Len())
		})
	}
}

func TestFilterZeroColumns_KeepsCellsAlignedAndInputUntouched(t *testing.T) {
	input := sampleTable()
	before := input.Clone()

	filtered, _ := FilterZeroColumns(input)

	assert.Equal(t, [][]string{
		{"1", "100", ""},
		{"2", "50", "late"},
		{"3", "75", ""},
	}, filtered.Rows)
	assert.Equal(t, before, input)
}

func TestFilterZeroColumns_Idempotent(t *testing.T) {
	once, removed := FilterZeroColumns(sampleTable())
	require.NotEmpty(t, removed)

	twice, removedAgain := FilterZeroColumns(once)

	assert.Empty(t, removedAgain)
	assert.Equal(t, once, twice)
}

func TestCap(t *testing.T) {
	input := sampleTable()

	capped, truncated := Cap(input, 2)
	assert.True(t, truncated)
	assert.Equal(t, 2, capped.Len())
	assert.Equal(t, input.Rows[:2], capped.Rows)

	same, truncated := Cap(input, 3)
	assert.False(t, truncated)
	assert.Equal(t, input, same)

	unlimited, truncated := Cap(input, 0)
	assert.False(t, truncated)
	assert.Equal(t, 3, unlimited.Len())
}

func TestSelect(t *testing.T) {
	selected := Select(sampleTable(), []string{"Base rate", "missing", "Listing ID"})

	assert.Equal(t, []string{"Base rate", "Listing ID"}, selected.Columns)
	assert.Equal(t, []string{"100", "1"}, selected.Rows[0])
}

func TestDefaultSelection(t *testing.T) {
	assert.Equal(t, []string{"Listing ID", "Tax"}, DefaultSelection(sampleTable(), 2))
	assert.Len(t, DefaultSelection(sampleTable(), 10), 5)
}

func TestFilter(t *testing.T) {
	input := sampleTable()

	odd := Filter(input, func(row int) bool { return row%2 == 0 })

	assert.Equal(t, input.Columns, odd.Columns)
	assert.Equal(t, [][]string{input.Rows[0], input.Rows[2]}, odd.Rows)
}
