package table

import (
	"fmt"

	"github.com/dot5enko/copper/schema"
)

// Table is an ordered set of equally long columns with unique labels.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

func Empty() *Table {
	return &Table{index: map[string]int{}}
}

// New copies the given columns into a table.
func New(columns ...Column) (*Table, error) {

	t := Empty()

	for _, col := range columns {
		if err := t.Append(col.Clone()); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) ColumnsCount() int {
	return len(t.columns)
}

func (t *Table) RowsCount() int {
	return t.rows
}

func (t *Table) Labels() []schema.Label {
	result := make([]schema.Label, len(t.columns))
	for i, col := range t.columns {
		result[i] = col.Label
	}
	return result
}

func (t *Table) Index(label schema.Label) (int, bool) {
	idx, ok := t.index[schema.LabelKey(label)]
	return idx, ok
}

func (t *Table) Column(label schema.Label) (Column, error) {

	idx, ok := t.Index(label)
	if !ok {
		return Column{}, fmt.Errorf("%w: %v", schema.ErrUnknownLabel, label)
	}

	return t.columns[idx].Clone(), nil
}

// At returns the column at position i without copying; callers must not
// modify it.
func (t *Table) At(i int) Column {
	return t.columns[i]
}

// Select builds a new table from the given labels, in the given order.
func (t *Table) Select(labels []schema.Label) (*Table, error) {

	result := Empty()
	result.rows = t.rows

	for _, label := range labels {

		idx, ok := t.Index(label)
		if !ok {
			return nil, fmt.Errorf("%w: %v", schema.ErrUnknownLabel, label)
		}

		if err := result.Append(t.columns[idx].Clone()); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SelectPositions is Select by column position, positions must be valid.
func (t *Table) SelectPositions(positions []int) *Table {

	result := Empty()
	result.rows = t.rows

	for _, pos := range positions {
		col := t.columns[pos].Clone()
		result.index[schema.LabelKey(col.Label)] = len(result.columns)
		result.columns = append(result.columns, col)
	}

	return result
}

func (t *Table) Clone() *Table {
	positions := make([]int, len(t.columns))
	for i := range positions {
		positions[i] = i
	}
	return t.SelectPositions(positions)
}

// Append adds a column at the end. The first column of an empty table
// fixes the row count.
func (t *Table) Append(col Column) error {

	if err := schema.CheckLabel(col.Label); err != nil {
		return err
	}

	key := schema.LabelKey(col.Label)
	if _, exists := t.index[key]; exists {
		return fmt.Errorf("%w: %v", schema.ErrDuplicateLabel, col.Label)
	}

	if len(t.columns) > 0 && col.Len() != t.rows {
		return fmt.Errorf("%w: column %v has %d rows, table has %d", schema.ErrLengthMismatch, col.Label, col.Len(), t.rows)
	}

	if len(t.columns) == 0 {
		t.rows = col.Len()
	}

	t.index[key] = len(t.columns)
	t.columns = append(t.columns, col)

	return nil
}

// Replace swaps the cells of an existing column. The table is left as is on error.
func (t *Table) Replace(label schema.Label, cells []Cell) error {

	idx, ok := t.Index(label)
	if !ok {
		return fmt.Errorf("%w: %v", schema.ErrUnknownLabel, label)
	}

	if len(cells) != t.rows {
		return fmt.Errorf("%w: got %d values for %d rows", schema.ErrLengthMismatch, len(cells), t.rows)
	}

	t.columns[idx].Cells = append([]Cell(nil), cells...)

	return nil
}

func (t *Table) Equal(other *Table) bool {

	if t.rows != other.rows || len(t.columns) != len(other.columns) {
		return false
	}

	for i := range t.columns {
		if !t.columns[i].Equal(other.columns[i]) {
			return false
		}
	}

	return true
}
