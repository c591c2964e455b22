// Package arrowrec converts between Arrow records and copper tables.
package arrowrec

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"golang.org/x/exp/constraints"
)

type valuer[T any] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

func numericCells[T constraints.Integer | constraints.Float](arr valuer[T]) []table.Cell {
	cells := make([]table.Cell, arr.Len())
	for i := range cells {
		if arr.IsNull(i) {
			cells[i] = table.Missing()
		} else {
			cells[i] = table.Numeric(float64(arr.Value(i)))
		}
	}
	return cells
}

func textCells(arr arrow.Array, value func(i int) string) []table.Cell {
	cells := make([]table.Cell, arr.Len())
	for i := range cells {
		if arr.IsNull(i) {
			cells[i] = table.Missing()
		} else {
			cells[i] = table.Raw(value(i))
		}
	}
	return cells
}

func arrayCells(arr arrow.Array) []table.Cell {

	switch a := arr.(type) {
	case *array.Float64:
		return numericCells[float64](a)
	case *array.Float32:
		return numericCells[float32](a)
	case *array.Int64:
		return numericCells[int64](a)
	case *array.Int32:
		return numericCells[int32](a)
	case *array.Int16:
		return numericCells[int16](a)
	case *array.Int8:
		return numericCells[int8](a)
	case *array.Uint64:
		return numericCells[uint64](a)
	case *array.Uint32:
		return numericCells[uint32](a)
	case *array.Uint16:
		return numericCells[uint16](a)
	case *array.Uint8:
		return numericCells[uint8](a)
	case *array.String:
		return textCells(a, a.Value)
	case *array.Boolean:
		return textCells(a, func(i int) string { return strconv.FormatBool(a.Value(i)) })
	default:
		return textCells(a, a.ValueStr)
	}
}

// FromRecord copies a record into a table labelled by field names.
func FromRecord(rec arrow.Record) (*table.Table, error) {

	columns := make([]table.Column, rec.NumCols())

	for i := range columns {
		columns[i] = table.CellColumn(rec.ColumnName(i), arrayCells(rec.Column(i))...)
	}

	t, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("unable to convert arrow record : %w", err)
	}

	return t, nil
}

// ToRecord builds a record with a nullable float64 field per numeric column
// and a nullable utf8 field per text column. The caller releases it.
func ToRecord(mem memory.Allocator, t *table.Table) arrow.Record {

	fields := make([]arrow.Field, t.ColumnsCount())
	for i := range fields {
		col := t.At(i)
		fields[i] = arrow.Field{Name: schema.LabelKey(col.Label), Type: arrow.BinaryTypes.String, Nullable: true}
		if col.IsNumeric() {
			fields[i].Type = arrow.PrimitiveTypes.Float64
		}
	}

	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	for i := range fields {

		col := t.At(i)

		switch fb := b.Field(i).(type) {
		case *array.Float64Builder:
			for _, cell := range col.Cells {
				if cell.IsMissing() {
					fb.AppendNull()
				} else {
					fb.Append(cell.Num)
				}
			}
		case *array.StringBuilder:
			for _, cell := range col.Cells {
				if cell.IsMissing() {
					fb.AppendNull()
				} else {
					fb.Append(cell.String())
				}
			}
		}
	}

	return b.NewRecord()
}
