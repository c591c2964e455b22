package store

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dot5enko/copper/bits"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pierrec/lz4/v4"
)

// byteCounter counts the bytes passed on to w.
type byteCounter struct {
	w io.Writer
	n int
}

func (b *byteCounter) Write(p []byte) (int, error) {
	n, err := b.w.Write(p)
	b.n += n
	return n, err
}

// missingRows lists the rows of col holding no value. The data file still
// carries `NaN` there, but only the list in the manifest marks a cell
// missing, so text such as `NA` or `NaN` survives as text.
func missingRows(col table.Column) []int {

	var missing bits.Bitset
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			missing.Set(i)
		}
	}

	if !missing.Any() {
		return nil
	}

	return missing.ToIndices()
}

// every cell is written as text so numbers keep full precision
func encodeData(t *table.Table) dataframe.DataFrame {

	list := make([]series.Series, t.ColumnsCount())

	for i := range list {
		col := t.At(i)

		list[i] = series.New(col.Strings(), series.String, schema.LabelKey(col.Label))
	}

	return dataframe.New(list...)
}

// writeData streams the table as lz4 compressed csv into w and reports the
// compressed and uncompressed sizes.
func writeData(w io.Writer, t *table.Table) (compressed int, uncompressed int, err error) {

	out := &byteCounter{w: w}

	zw := lz4.NewWriter(out)
	if err := zw.Apply(lz4.ChecksumOption(true)); err != nil {
		return 0, 0, err
	}

	in := &byteCounter{w: zw}

	if err := encodeData(t).WriteCSV(in); err != nil {
		return 0, 0, fmt.Errorf("unable to encode data : %w", err)
	}

	if err := zw.Close(); err != nil {
		return 0, 0, fmt.Errorf("unable to compress data : %w", err)
	}

	return out.n, in.n, nil
}

func decodeColumn(mc ManifestColumn, records []string) (table.Column, error) {

	label, err := schema.LabelFromKey(mc.Key, mc.Kind)
	if err != nil {
		return table.Column{}, err
	}

	var missing bits.Bitset
	for _, row := range mc.Missing {
		if row < 0 || row >= len(records) {
			return table.Column{}, fmt.Errorf("%w: column %s marks row %d missing, data has %d rows", schema.ErrLengthMismatch, mc.Key, row, len(records))
		}
		missing.Set(row)
	}

	cells := make([]table.Cell, len(records))

	for i, rec := range records {

		switch {
		case missing.Get(i):
			cells[i] = table.Missing()
		case mc.Numeric:
			v, parseErr := strconv.ParseFloat(rec, 64)
			if parseErr != nil {
				return table.Column{}, fmt.Errorf("column %s row %d : %w", mc.Key, i, parseErr)
			}
			cells[i] = table.Numeric(v)
		default:
			cells[i] = table.Raw(rec)
		}
	}

	return table.CellColumn(label, cells...), nil
}

// readData decodes a data file written by writeData. No text is treated as
// a missing marker on the way in.
func readData(r io.Reader, m *Manifest) (*table.Table, error) {

	df := dataframe.ReadCSV(lz4.NewReader(r),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("unable to parse data : %w", df.Err)
	}

	if df.Ncol() != len(m.Columns) || df.Nrow() != m.Rows {
		return nil, fmt.Errorf("%w: data is %dx%d, manifest says %dx%d", schema.ErrLengthMismatch, df.Ncol(), df.Nrow(), len(m.Columns), m.Rows)
	}

	columns := make([]table.Column, len(m.Columns))

	for i, mc := range m.Columns {
		col, err := decodeColumn(mc, df.Col(mc.Key).Records())
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	return table.New(columns...)
}
