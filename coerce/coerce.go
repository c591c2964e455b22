package coerce

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dot5enko/copper/bits"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"golang.org/x/text/unicode/norm"
)

// optionally signed integer or decimal, optional exponent
var numericToken = func() *regexp.Regexp {
	re := regexp.MustCompile(`[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)
	re.Longest()
	return re
}()

type Result struct {
	Cells []table.Cell

	// rows that held no usable number and are now missing
	Failed bits.Bitset
}

func (r Result) FailedRows() []int {
	return r.Failed.ToIndices()
}

// Token extracts the first number embedded in s, e.g. 3.14 from "a(3.140000)".
// Full-width digits are folded to ASCII first.
func Token(s string) (float64, error) {

	normalized := norm.NFKC.String(s)

	match := numericToken.FindString(normalized)
	if match == "" {
		return 0, fmt.Errorf("%w: `%s`", schema.ErrNoNumericToken, s)
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: `%s` : %s", schema.ErrNoNumericToken, s, err.Error())
	}

	return v, nil
}

// Column converts every raw cell to a number. Numeric and missing cells are
// kept as they are; raw cells without a number become missing and are
// reported in Result.Failed.
func Column(cells []table.Cell) Result {

	result := Result{
		Cells:  make([]table.Cell, len(cells)),
		Failed: bits.NewBitset(len(cells)),
	}

	for i, cell := range cells {

		if cell.Kind != table.RawKind {
			result.Cells[i] = cell
			continue
		}

		v, err := Token(cell.Text)
		if err != nil {
			result.Cells[i] = table.Missing()
			result.Failed.Set(i)
			continue
		}

		result.Cells[i] = table.Numeric(v)
	}

	return result
}
