package coerce

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
)

func TestToken(t *testing.T) {

	cases := []struct {
		in       string
		expected float64
	}{
		{"a(3.140000)", 3.14},
		{"42", 42},
		{"x=-7.5kg", -7.5},
		{"+.5", 0.5},
		{"1e3 items", 1000},
		{"2.5E-2", 0.025},
		{"v1.2.3", 1.2},
		{"10e", 10},
		{"ｘ(１２.５)", 12.5},
	}

	for _, c := range cases {
		got, err := Token(c.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.in, err)
			continue
		}
		if got != c.expected {
			t.Errorf("%q: expected %v but got %v", c.in, c.expected, got)
		}
	}
}

func TestTokenMissing(t *testing.T) {

	for _, in := range []string{"", "abc", "-", "."} {
		if _, err := Token(in); !errors.Is(err, schema.ErrNoNumericToken) {
			t.Errorf("%q: expected ErrNoNumericToken, got %v", in, err)
		}
	}

	if _, err := Token("1e999"); !errors.Is(err, schema.ErrNoNumericToken) {
		t.Errorf("expected out of range token to fail, got %v", err)
	}
}

func TestColumnIntegers(t *testing.T) {

	cells := make([]table.Cell, 100)
	for i := range cells {
		cells[i] = table.Raw(fmt.Sprintf("a(%f)", float64(i)))
	}

	result := Column(cells)

	if len(result.Cells) != 100 {
		t.Fatalf("expected 100 cells but got %d", len(result.Cells))
	}

	for i, cell := range result.Cells {
		if cell.Kind != table.NumericKind || cell.Num != float64(i) {
			t.Errorf("row %d: expected %d but got %v", i, i, cell)
		}
	}

	if result.Failed.Any() {
		t.Errorf("unexpected failures %v", result.FailedRows())
	}
}

func TestColumnFloats(t *testing.T) {

	cells := make([]table.Cell, 100)
	for i := range cells {
		cells[i] = table.Raw(fmt.Sprintf("a(%f)", float64(i)/100))
	}

	result := Column(cells)

	for i, cell := range result.Cells {
		if cell.Num != float64(i)/100 {
			t.Errorf("row %d: expected %v but got %v", i, float64(i)/100, cell.Num)
		}
	}
}

func TestColumnKeepsNumericAndReportsFailures(t *testing.T) {

	cells := []table.Cell{
		table.Numeric(1.5),
		table.Raw("n/a"),
		table.Missing(),
		table.Raw("(2)"),
		table.Raw("none"),
	}

	result := Column(cells)

	expected := []table.Cell{
		table.Numeric(1.5),
		table.Missing(),
		table.Missing(),
		table.Numeric(2),
		table.Missing(),
	}

	if !reflect.DeepEqual(result.Cells, expected) {
		t.Errorf("expected %v but got %v", expected, result.Cells)
	}

	if !reflect.DeepEqual(result.FailedRows(), []int{1, 4}) {
		t.Errorf("expected failed rows [1 4] but got %v", result.FailedRows())
	}

	again := Column(result.Cells)
	if !reflect.DeepEqual(again.Cells, result.Cells) || again.Failed.Any() {
		t.Errorf("second pass changed the column")
	}
}

func BenchmarkColumn(b *testing.B) {

	cells := make([]table.Cell, 10000)
	for i := range cells {
		cells[i] = table.Raw(fmt.Sprintf("value(%f)", float64(i)))
	}

	for b.Loop() {
		Column(cells)
	}
}
