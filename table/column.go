package table

import (
	"errors"
	"fmt"

	"github.com/dot5enko/copper/schema"
	"golang.org/x/exp/constraints"
)

var ErrNotNumeric = errors.New("column is not numeric")

type Column struct {
	Label schema.Label
	Cells []Cell
}

func CellColumn(label schema.Label, cells ...Cell) Column {
	return Column{Label: label, Cells: cells}
}

func StringColumn(label schema.Label, values ...string) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Raw(v)
	}
	return Column{Label: label, Cells: cells}
}

func NumericColumn[T constraints.Integer | constraints.Float](label schema.Label, values ...T) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Numeric(float64(v))
	}
	return Column{Label: label, Cells: cells}
}

func (c Column) Len() int {
	return len(c.Cells)
}

// IsNumeric holds when no cell is raw text; missing cells do not count.
func (c Column) IsNumeric() bool {
	for _, cell := range c.Cells {
		if cell.Kind == RawKind {
			return false
		}
	}
	return true
}

func (c Column) Floats() ([]float64, error) {

	result := make([]float64, len(c.Cells))

	for i, cell := range c.Cells {
		if cell.Kind == RawKind {
			return nil, fmt.Errorf("%w: column %v row %d holds `%s`", ErrNotNumeric, c.Label, i, cell.Text)
		}
		result[i] = cell.Float()
	}

	return result, nil
}

func (c Column) Strings() []string {
	result := make([]string, len(c.Cells))
	for i, cell := range c.Cells {
		result[i] = cell.String()
	}
	return result
}

func (c Column) Clone() Column {
	return Column{Label: c.Label, Cells: append([]Cell(nil), c.Cells...)}
}

func (c Column) Equal(other Column) bool {

	if schema.LabelKey(c.Label) != schema.LabelKey(other.Label) || len(c.Cells) != len(other.Cells) {
		return false
	}

	for i := range c.Cells {
		if !c.Cells[i].Equal(other.Cells[i]) {
			return false
		}
	}

	return true
}
