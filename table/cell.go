package table

import (
	"fmt"
	"math"
	"strconv"
)

type Kind uint8

const (
	RawKind Kind = iota
	NumericKind
	MissingKind
)

func (k Kind) String() string {
	switch k {
	case RawKind:
		return "Raw"
	case NumericKind:
		return "Numeric"
	case MissingKind:
		return "Missing"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Cell is a single value: raw text, a number, or a missing marker.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

func Raw(s string) Cell {
	return Cell{Kind: RawKind, Text: s}
}

// Numeric turns NaN into a missing cell.
func Numeric(f float64) Cell {
	if math.IsNaN(f) {
		return Missing()
	}
	return Cell{Kind: NumericKind, Num: f}
}

func Missing() Cell {
	return Cell{Kind: MissingKind}
}

func (c Cell) IsMissing() bool {
	return c.Kind == MissingKind
}

// Float returns NaN for missing and raw cells.
func (c Cell) Float() float64 {
	if c.Kind == NumericKind {
		return c.Num
	}
	return math.NaN()
}

func (c Cell) String() string {
	switch c.Kind {
	case NumericKind:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case MissingKind:
		return "NaN"
	default:
		return c.Text
	}
}

func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case NumericKind:
		return c.Num == other.Num
	case RawKind:
		return c.Text == other.Text
	default:
		return true
	}
}
