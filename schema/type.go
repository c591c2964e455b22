package schema

import (
	"fmt"
	"strings"
)

// Type tells how the values of a column are interpreted.
type Type uint8

const (
	Number Type = iota
	Category
)

func (t Type) String() string {
	switch t {
	case Number:
		return "NUMBER"
	case Category:
		return "CATEGORY"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

func (t Type) Valid() bool {
	return t == Number || t == Category
}

func ParseType(s string) (Type, error) {

	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NUMBER":
		return Number, nil
	case "CATEGORY":
		return Category, nil
	default:
		return 0, fmt.Errorf("%w: type `%s`", ErrInvalidTag, s)
	}
}

// CheckTypes fails on the first value outside the enumeration.
func CheckTypes(values []Type) error {
	for _, v := range values {
		if !v.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidTag, v.String())
		}
	}
	return nil
}
