package metadata

import (
	"fmt"

	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
)

type Entry struct {
	Label schema.Label
	Role  schema.Role
	Type  schema.Type
}

// Table maps column labels to their role and type, in column order.
type Table struct {
	entries []Entry
	index   map[string]int
}

func newTable(entries []Entry) *Table {

	m := &Table{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		m.index[schema.LabelKey(e.Label)] = i
	}

	return m
}

// DefaultEntry is what a newly seen column gets: an input, numeric when its
// values already are.
func DefaultEntry(col table.Column) Entry {

	entry := Entry{Label: col.Label, Role: schema.Input, Type: schema.Category}
	if col.IsNumeric() {
		entry.Type = schema.Number
	}

	return entry
}

func Infer(t *table.Table) *Table {

	entries := make([]Entry, t.ColumnsCount())
	for i := range entries {
		entries[i] = DefaultEntry(t.At(i))
	}

	return newTable(entries)
}

func (m *Table) Len() int {
	return len(m.entries)
}

func (m *Table) Labels() []schema.Label {
	result := make([]schema.Label, len(m.entries))
	for i, e := range m.entries {
		result[i] = e.Label
	}
	return result
}

func (m *Table) lookup(label schema.Label) (int, error) {
	idx, ok := m.index[schema.LabelKey(label)]
	if !ok {
		return 0, fmt.Errorf("%w: %v", schema.ErrUnknownLabel, label)
	}
	return idx, nil
}

func (m *Table) positions(sel schema.Selector) ([]int, error) {

	labels, err := sel.Resolve(m.Labels())
	if err != nil {
		return nil, err
	}

	result := make([]int, len(labels))
	for i, l := range labels {
		result[i] = m.index[schema.LabelKey(l)]
	}

	return result, nil
}

func (m *Table) Entry(label schema.Label) (Entry, error) {
	idx, err := m.lookup(label)
	if err != nil {
		return Entry{}, err
	}
	return m.entries[idx], nil
}

func (m *Table) RoleOf(label schema.Label) (schema.Role, error) {
	e, err := m.Entry(label)
	return e.Role, err
}

func (m *Table) TypeOf(label schema.Label) (schema.Type, error) {
	e, err := m.Entry(label)
	return e.Type, err
}

func (m *Table) Roles(sel schema.Selector) ([]schema.Role, error) {

	positions, err := m.positions(sel)
	if err != nil {
		return nil, err
	}

	result := make([]schema.Role, len(positions))
	for i, p := range positions {
		result[i] = m.entries[p].Role
	}

	return result, nil
}

func (m *Table) Types(sel schema.Selector) ([]schema.Type, error) {

	positions, err := m.positions(sel)
	if err != nil {
		return nil, err
	}

	result := make([]schema.Type, len(positions))
	for i, p := range positions {
		result[i] = m.entries[p].Type
	}

	return result, nil
}

// broadcast checks that values is a single value or one value per selected
// position.
func broadcast(positions []int, values int) error {
	if values == 1 || values == len(positions) {
		return nil
	}
	return fmt.Errorf("%w: %d values for %d selected columns", schema.ErrLengthMismatch, values, len(positions))
}

func (m *Table) SetRole(sel schema.Selector, values ...schema.Role) error {

	if err := schema.CheckRoles(values); err != nil {
		return err
	}

	positions, err := m.positions(sel)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return fmt.Errorf("%w: no role given", schema.ErrLengthMismatch)
	}

	if err := broadcast(positions, len(values)); err != nil {
		return err
	}

	for i, p := range positions {
		if len(values) == 1 {
			m.entries[p].Role = values[0]
		} else {
			m.entries[p].Role = values[i]
		}
	}

	return nil
}

func (m *Table) SetType(sel schema.Selector, values ...schema.Type) error {

	if err := schema.CheckTypes(values); err != nil {
		return err
	}

	positions, err := m.positions(sel)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return fmt.Errorf("%w: no type given", schema.ErrLengthMismatch)
	}

	if err := broadcast(positions, len(values)); err != nil {
		return err
	}

	for i, p := range positions {
		if len(values) == 1 {
			m.entries[p].Type = values[0]
		} else {
			m.entries[p].Type = values[i]
		}
	}

	return nil
}

// Append registers metadata for a column added after construction.
func (m *Table) Append(e Entry) error {

	key := schema.LabelKey(e.Label)
	if _, exists := m.index[key]; exists {
		return fmt.Errorf("%w: %v", schema.ErrDuplicateLabel, e.Label)
	}

	if !e.Role.Valid() || !e.Type.Valid() {
		return fmt.Errorf("%w: %s/%s", schema.ErrInvalidTag, e.Role, e.Type)
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, e)

	return nil
}

// Replace swaps every entry at once. The new entries must cover exactly the
// current labels, in any order; they are matched by label and the current
// order is kept. Nothing changes on error.
func (m *Table) Replace(entries []Entry) error {

	if len(entries) != len(m.entries) {
		return fmt.Errorf("%w: got %d entries for %d columns", schema.ErrMetadataShapeMismatch, len(entries), len(m.entries))
	}

	replaced := make([]Entry, len(m.entries))
	seen := make([]bool, len(m.entries))

	for _, e := range entries {

		idx, ok := m.index[schema.LabelKey(e.Label)]
		if !ok {
			return fmt.Errorf("%w: unknown label %v", schema.ErrMetadataShapeMismatch, e.Label)
		}

		if seen[idx] {
			return fmt.Errorf("%w: label %v given twice", schema.ErrMetadataShapeMismatch, e.Label)
		}

		if !e.Role.Valid() || !e.Type.Valid() {
			return fmt.Errorf("%w: %v has %s/%s", schema.ErrInvalidTag, e.Label, e.Role, e.Type)
		}

		seen[idx] = true
		replaced[idx] = Entry{Label: m.entries[idx].Label, Role: e.Role, Type: e.Type}
	}

	m.entries = replaced

	return nil
}

func (m *Table) Export() []Entry {
	return append([]Entry(nil), m.entries...)
}

func (m *Table) Clone() *Table {
	return newTable(m.Export())
}

// Check verifies that the metadata corresponds one to one, in order, to the
// columns of t and that every tag is valid.
func (m *Table) Check(t *table.Table) error {

	if len(m.entries) != t.ColumnsCount() {
		return fmt.Errorf("%w: %d entries for %d columns", schema.ErrMetadataShapeMismatch, len(m.entries), t.ColumnsCount())
	}

	for i, e := range m.entries {

		colLabel := t.At(i).Label
		if schema.LabelKey(colLabel) != schema.LabelKey(e.Label) {
			return fmt.Errorf("%w: entry %d is %v, column is %v", schema.ErrMetadataShapeMismatch, i, e.Label, colLabel)
		}

		if !e.Role.Valid() || !e.Type.Valid() {
			return fmt.Errorf("%w: %v has %s/%s", schema.ErrInvalidTag, e.Label, e.Role, e.Type)
		}
	}

	return nil
}
