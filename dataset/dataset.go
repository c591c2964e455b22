package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/copper/filter"
	"github.com/dot5enko/copper/metadata"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
)

var ErrCorrupted = errors.New("dataset metadata out of sync with its table")

type Config struct {
	Logger *slog.Logger

	// max columns coerced at once by Refresh, 0 means GOMAXPROCS
	RefreshWorkers int
}

// Dataset owns a table and its per column metadata and keeps the two in
// step. It is not safe for concurrent mutation.
type Dataset struct {
	id    uuid.UUID
	frame *table.Table
	meta  *metadata.Table

	config Config
	logger *slog.Logger
}

func New(t *table.Table) *Dataset {
	return NewWithConfig(Config{}, t)
}

func Empty() *Dataset {
	return NewWithConfig(Config{}, nil)
}

// NewWithConfig copies t (nil means an empty table) and infers the metadata
// of every column.
func NewWithConfig(config Config, t *table.Table) *Dataset {

	if t == nil {
		t = table.Empty()
	} else {
		t = t.Clone()
	}

	if config.RefreshWorkers <= 0 {
		config.RefreshWorkers = runtime.GOMAXPROCS(0)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	uid, _ := uuid.NewV7()

	return &Dataset{
		id:     uid,
		frame:  t,
		meta:   metadata.Infer(t),
		config: config,
		logger: logger,
	}
}

// Restore rebuilds a dataset with a known id and metadata, e.g. from a
// snapshot. The metadata must match the table.
func Restore(config Config, id uuid.UUID, t *table.Table, entries []metadata.Entry) (*Dataset, error) {

	ds := NewWithConfig(config, t)
	ds.id = id

	if err := ds.SetMetadata(entries); err != nil {
		return nil, err
	}

	return ds, nil
}

func (d *Dataset) ID() uuid.UUID {
	return d.id
}

func (d *Dataset) ColumnsCount() int {
	return d.frame.ColumnsCount()
}

func (d *Dataset) RowsCount() int {
	return d.frame.RowsCount()
}

func (d *Dataset) Labels() []schema.Label {
	return d.frame.Labels()
}

func (d *Dataset) check() error {
	if err := d.meta.Check(d.frame); err != nil {
		return fmt.Errorf("%w: %s", ErrCorrupted, err.Error())
	}
	return nil
}

// Get returns a copy of a single column.
func (d *Dataset) Get(label schema.Label) (table.Column, error) {
	return d.frame.Column(label)
}

// Select returns a copy of the selected columns in selector order.
func (d *Dataset) Select(sel schema.Selector) (*table.Table, error) {

	labels, err := sel.Resolve(d.frame.Labels())
	if err != nil {
		return nil, err
	}

	return d.frame.Select(labels)
}

// Frame returns a copy of the whole table.
func (d *Dataset) Frame() *table.Table {
	return d.frame.Clone()
}

// Set replaces the values of a column and keeps its tags. An unknown label
// adds a new column at the end, tagged like at construction.
func (d *Dataset) Set(label schema.Label, cells []table.Cell) error {

	if _, exists := d.frame.Index(label); exists {

		if err := d.frame.Replace(label, cells); err != nil {
			return err
		}

		return d.check()
	}

	col := table.CellColumn(label, append([]table.Cell(nil), cells...)...)

	if err := d.frame.Append(col); err != nil {
		return err
	}

	entry := metadata.DefaultEntry(col)
	if err := d.meta.Append(entry); err != nil {
		return err
	}

	d.logger.Info("column added", "dataset", d.id, "label", label, "role", entry.Role, "type", entry.Type)

	return d.check()
}

func (d *Dataset) SetFloats(label schema.Label, values []float64) error {
	return d.Set(label, table.NumericColumn(label, values...).Cells)
}

func (d *Dataset) SetStrings(label schema.Label, values []string) error {
	return d.Set(label, table.StringColumn(label, values...).Cells)
}

func (d *Dataset) Roles() []schema.Role {
	roles, _ := d.meta.Roles(schema.All())
	return roles
}

func (d *Dataset) Types() []schema.Type {
	types, _ := d.meta.Types(schema.All())
	return types
}

func (d *Dataset) RolesOf(sel schema.Selector) ([]schema.Role, error) {
	return d.meta.Roles(sel)
}

func (d *Dataset) TypesOf(sel schema.Selector) ([]schema.Type, error) {
	return d.meta.Types(sel)
}

func (d *Dataset) RoleOf(label schema.Label) (schema.Role, error) {
	return d.meta.RoleOf(label)
}

func (d *Dataset) TypeOf(label schema.Label) (schema.Type, error) {
	return d.meta.TypeOf(label)
}

func (d *Dataset) SetRole(sel schema.Selector, values ...schema.Role) error {
	if err := d.meta.SetRole(sel, values...); err != nil {
		return err
	}
	return d.check()
}

func (d *Dataset) SetType(sel schema.Selector, values ...schema.Type) error {
	if err := d.meta.SetType(sel, values...); err != nil {
		return err
	}
	return d.check()
}

// Metadata returns a copy of every (label, role, type) entry in column order.
func (d *Dataset) Metadata() []metadata.Entry {
	return d.meta.Export()
}

// SetMetadata replaces all tags at once. The entries must name exactly the
// current columns; nothing changes otherwise.
func (d *Dataset) SetMetadata(entries []metadata.Entry) error {

	if err := d.meta.Replace(entries); err != nil {
		return err
	}

	return d.check()
}

// ImportMetadata applies rows whose labels are in string form.
func (d *Dataset) ImportMetadata(rows []metadata.Row) error {

	entries, err := metadata.Resolve(rows, d.frame.Labels())
	if err != nil {
		return err
	}

	return d.SetMetadata(entries)
}

func (d *Dataset) MetadataFrame() dataframe.DataFrame {
	return d.meta.ExportFrame()
}

func (d *Dataset) WriteMetadata(w io.Writer) error {
	return d.meta.WriteCSV(w)
}

func (d *Dataset) ReadMetadata(r io.Reader) error {

	rows, err := metadata.ReadCSV(r)
	if err != nil {
		return err
	}

	return d.ImportMetadata(rows)
}

// Filter returns a copy of the columns matching c. Empty criteria return
// every column, ignored ones included.
func (d *Dataset) Filter(c filter.Criteria) (*table.Table, error) {
	return filter.Apply(d.frame, d.meta, c)
}

func (d *Dataset) Dump(w io.Writer) {
	spew.Fdump(w, d.meta.Export())
}
