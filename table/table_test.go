package table

import (
	"errors"
	"math"
	"testing"

	"github.com/dot5enko/copper/schema"
)

func TestNewRejectsUnevenColumns(t *testing.T) {

	_, err := New(
		NumericColumn(0, 1, 2, 3),
		NumericColumn(1, 1, 2),
	)

	if !errors.Is(err, schema.ErrLengthMismatch) {
		t.Errorf("expected length mismatch, got %v", err)
	}
}

func TestNewRejectsDuplicateAndInvalidLabels(t *testing.T) {

	_, err := New(NumericColumn(1, 1.0), StringColumn("1", "a"))
	if !errors.Is(err, schema.ErrDuplicateLabel) {
		t.Errorf("expected duplicate label, got %v", err)
	}

	_, err = New(NumericColumn(1.5, 1.0))
	if !errors.Is(err, schema.ErrInvalidLabel) {
		t.Errorf("expected invalid label, got %v", err)
	}
}

func TestColumnNumericness(t *testing.T) {

	if !NumericColumn("a", 1, 2, 3).IsNumeric() {
		t.Errorf("numeric column reported as non numeric")
	}

	if StringColumn("b", "1", "x").IsNumeric() {
		t.Errorf("string column reported as numeric")
	}

	if !CellColumn("c", Missing(), Numeric(1)).IsNumeric() {
		t.Errorf("missing cells should not break numericness")
	}

	if _, err := StringColumn("b", "x").Floats(); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
}

func TestNumericNaNIsMissing(t *testing.T) {

	c := Numeric(math.NaN())
	if !c.IsMissing() {
		t.Errorf("expected NaN to become missing, got %v", c.Kind)
	}

	if !math.IsNaN(c.Float()) {
		t.Errorf("expected NaN float for missing cell")
	}
}

func TestSelectKeepsSelectorOrderAndCopies(t *testing.T) {

	tbl := MustNew(
		NumericColumn(0, 1, 2),
		NumericColumn(1, 3, 4),
		NumericColumn(2, 5, 6),
	)

	sub, err := tbl.Select([]schema.Label{2, 0})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	labels := sub.Labels()
	if len(labels) != 2 || labels[0] != 2 || labels[1] != 0 {
		t.Errorf("unexpected labels %v", labels)
	}

	sub.columns[0].Cells[0] = Numeric(100)

	col, _ := tbl.Column(2)
	if col.Cells[0].Num != 5 {
		t.Errorf("sub table aliases the source table")
	}

	if _, err := tbl.Select([]schema.Label{7}); !errors.Is(err, schema.ErrUnknownLabel) {
		t.Errorf("expected unknown label, got %v", err)
	}
}

func TestReplaceIsAllOrNothing(t *testing.T) {

	tbl := MustNew(NumericColumn("x", 1, 2, 3))

	err := tbl.Replace("x", []Cell{Numeric(1)})
	if !errors.Is(err, schema.ErrLengthMismatch) {
		t.Errorf("expected length mismatch, got %v", err)
	}

	if !tbl.Equal(MustNew(NumericColumn("x", 1, 2, 3))) {
		t.Errorf("table changed after a rejected replace")
	}

	if err := tbl.Replace("x", []Cell{Raw("a"), Raw("b"), Raw("c")}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	col, _ := tbl.Column("x")
	if col.IsNumeric() {
		t.Errorf("expected replaced column to hold raw values")
	}
}

func TestSelectNothingKeepsRows(t *testing.T) {

	tbl := MustNew(NumericColumn(0, 1, 2, 3))

	sub, err := tbl.Select(nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if sub.ColumnsCount() != 0 || sub.RowsCount() != 3 {
		t.Errorf("expected 0x3 table, got %dx%d", sub.ColumnsCount(), sub.RowsCount())
	}
}
