// Package gotaframe converts between gota data frames and copper tables.
package gotaframe

import (
	"fmt"
	"io"

	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func seriesCells(s series.Series) []table.Cell {

	cells := make([]table.Cell, s.Len())
	numeric := s.Type() == series.Float || s.Type() == series.Int

	for i := range cells {

		e := s.Elem(i)

		switch {
		case e.IsNA():
			cells[i] = table.Missing()
		case numeric:
			cells[i] = table.Numeric(e.Float())
		default:
			cells[i] = table.Raw(e.String())
		}
	}

	return cells
}

// FromDataFrame builds a table labelled by the frame's column names. Int and
// float series become numeric cells, everything else raw text.
func FromDataFrame(df dataframe.DataFrame) (*table.Table, error) {

	if df.Err != nil {
		return nil, fmt.Errorf("unable to read data frame : %w", df.Err)
	}

	columns := make([]table.Column, 0, df.Ncol())
	for _, name := range df.Names() {
		columns = append(columns, table.CellColumn(name, seriesCells(df.Col(name))...))
	}

	return table.New(columns...)
}

// ToDataFrame renders numeric columns as float series and the rest as string
// series; missing cells become NaN.
func ToDataFrame(t *table.Table) (dataframe.DataFrame, error) {

	if t.ColumnsCount() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("unable to build a data frame without columns")
	}

	list := make([]series.Series, t.ColumnsCount())

	for i := range list {

		col := t.At(i)
		name := schema.LabelKey(col.Label)

		if col.IsNumeric() {
			values, _ := col.Floats()
			list[i] = series.New(values, series.Float, name)
			continue
		}

		values := make([]string, col.Len())
		for r, cell := range col.Cells {
			if cell.IsMissing() {
				values[r] = "NaN"
			} else {
				values[r] = cell.String()
			}
		}
		list[i] = series.New(values, series.String, name)
	}

	df := dataframe.New(list...)

	return df, df.Err
}

func ReadCSV(r io.Reader, options ...dataframe.LoadOption) (*table.Table, error) {
	return FromDataFrame(dataframe.ReadCSV(r, options...))
}

func WriteCSV(w io.Writer, t *table.Table) error {

	df, err := ToDataFrame(t)
	if err != nil {
		return err
	}

	return df.WriteCSV(w)
}

