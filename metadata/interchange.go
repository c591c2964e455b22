package metadata

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dot5enko/copper/schema"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	LabelHeader = "Columns"
	RoleHeader  = "Role"
	TypeHeader  = "Type"
)

// Row is one imported metadata line. Key is the label in string form, as it
// comes out of a CSV file.
type Row struct {
	Key  string
	Role schema.Role
	Type schema.Type
}

// ExportFrame renders the metadata as a `Columns, Role, Type` data frame.
func (m *Table) ExportFrame() dataframe.DataFrame {

	keys := make([]string, len(m.entries))
	roles := make([]string, len(m.entries))
	types := make([]string, len(m.entries))

	for i, e := range m.entries {
		keys[i] = schema.LabelKey(e.Label)
		roles[i] = e.Role.String()
		types[i] = e.Type.String()
	}

	return dataframe.New(
		series.New(keys, series.String, LabelHeader),
		series.New(roles, series.String, RoleHeader),
		series.New(types, series.String, TypeHeader),
	)
}

func (m *Table) WriteCSV(w io.Writer) error {
	return m.ExportFrame().WriteCSV(w)
}

// ImportFrame reads rows from a frame holding `Columns`, `Role` and `Type`
// columns. The label column may be of any series type.
func ImportFrame(df dataframe.DataFrame) ([]Row, error) {

	if df.Err != nil {
		return nil, fmt.Errorf("unable to read metadata frame : %w", df.Err)
	}

	if err := requireHeaders(df.Names()); err != nil {
		return nil, err
	}

	keys := df.Col(LabelHeader).Records()
	roles := df.Col(RoleHeader).Records()
	types := df.Col(TypeHeader).Records()

	rows := make([]Row, len(keys))

	for i := range keys {

		role, err := schema.ParseRole(roles[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		typ, err := schema.ParseType(types[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		rows[i] = Row{Key: keys[i], Role: role, Type: typ}
	}

	return rows, nil
}

func requireHeaders(names []string) error {

	present := map[string]bool{}
	for _, name := range names {
		present[name] = true
	}

	for _, required := range []string{LabelHeader, RoleHeader, TypeHeader} {
		if !present[required] {
			return fmt.Errorf("%w: metadata frame has no `%s` column", schema.ErrMetadataShapeMismatch, required)
		}
	}

	return nil
}

// ReadCSV parses a file written by WriteCSV. Every cell is kept as text:
// labels such as `NA` or `<nil>` are labels, not missing values.
func ReadCSV(r io.Reader) ([]Row, error) {

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read metadata : %w", err)
	}

	options := []dataframe.LoadOption{
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw), options...)

	if df.Err != nil && len(bytes.Split(bytes.TrimSpace(raw), []byte("\n"))) == 1 {
		return readHeaderOnly(raw, options)
	}

	return ImportFrame(df)
}

// readHeaderOnly handles the metadata of a table without columns: gota
// refuses a frame with no records, so the header is loaded as a data row.
func readHeaderOnly(raw []byte, options []dataframe.LoadOption) ([]Row, error) {

	head := dataframe.ReadCSV(bytes.NewReader(raw), append(options, dataframe.HasHeader(false))...)
	if head.Err != nil {
		return nil, fmt.Errorf("unable to read metadata frame : %w", head.Err)
	}

	records := head.Records()
	if err := requireHeaders(records[len(records)-1]); err != nil {
		return nil, err
	}

	return []Row{}, nil
}

// Resolve maps imported string keys back onto the table's native labels.
// A key that matches no label is reported as a shape mismatch.
func Resolve(rows []Row, labels []schema.Label) ([]Entry, error) {

	byKey := make(map[string]schema.Label, len(labels))
	for _, l := range labels {
		byKey[schema.LabelKey(l)] = l
	}

	entries := make([]Entry, len(rows))

	for i, row := range rows {

		label, ok := byKey[row.Key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown label `%s`", schema.ErrMetadataShapeMismatch, row.Key)
		}

		entries[i] = Entry{Label: label, Role: row.Role, Type: row.Type}
	}

	return entries, nil
}
