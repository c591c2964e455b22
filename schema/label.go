package schema

import (
	"fmt"
	"strconv"
)

// Label identifies a column: an int for positional frames, a string for named ones.
type Label any

func CheckLabel(l Label) error {
	switch l.(type) {
	case int, string:
		return nil
	default:
		return fmt.Errorf("%w: %v (%T)", ErrInvalidLabel, l, l)
	}
}

// LabelKey is the canonical string form of a label. Labels of one table are
// unique by key, which is what lets string-typed imports find them again.
func LabelKey(l Label) string {
	switch v := l.(type) {
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// LabelKind is "int" or "string"; used by persisted manifests.
func LabelKind(l Label) string {
	if _, ok := l.(int); ok {
		return "int"
	}
	return "string"
}

func LabelFromKey(key, kind string) (Label, error) {

	if kind != "int" {
		return key, nil
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return nil, fmt.Errorf("%w: `%s` is not an int label", ErrInvalidLabel, key)
	}

	return v, nil
}
