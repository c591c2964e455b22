package arrowrec

import (
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
)

func TestFromRecord(t *testing.T) {

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	sc := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "grade", Type: arrow.BinaryTypes.String},
	}, nil)

	b := array.NewRecordBuilder(mem, sc)
	defer b.Release()

	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.Float64Builder).AppendValues([]float64{0.5, 0, 1.5}, []bool{true, false, true})
	b.Field(2).(*array.StringBuilder).AppendValues([]string{"A", "B", "C"}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	tbl, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if !reflect.DeepEqual(tbl.Labels(), []schema.Label{"id", "score", "grade"}) {
		t.Errorf("unexpected labels %v", tbl.Labels())
	}

	score, _ := tbl.Column("score")
	if !score.IsNumeric() || !score.Cells[1].IsMissing() || score.Cells[2].Num != 1.5 {
		t.Errorf("unexpected score cells %v", score.Strings())
	}

	grade, _ := tbl.Column("grade")
	if !reflect.DeepEqual(grade.Strings(), []string{"A", "B", "C"}) || grade.IsNumeric() {
		t.Errorf("unexpected grade cells %v", grade.Strings())
	}
}

func TestToRecordRoundTrip(t *testing.T) {

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl := table.MustNew(
		table.CellColumn("x", table.Numeric(1), table.Missing()),
		table.CellColumn("y", table.Raw("a(1)"), table.Missing()),
	)

	rec := ToRecord(mem, tbl)
	defer rec.Release()

	if rec.NumCols() != 2 || rec.NumRows() != 2 {
		t.Fatalf("unexpected record shape %dx%d", rec.NumCols(), rec.NumRows())
	}

	if rec.Schema().Field(0).Type.ID() != arrow.FLOAT64 || rec.Schema().Field(1).Type.ID() != arrow.STRING {
		t.Errorf("unexpected field types %v", rec.Schema())
	}

	back, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if !back.Equal(tbl) {
		t.Errorf("round trip mismatch")
	}
}
