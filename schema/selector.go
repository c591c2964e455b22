package schema

import "fmt"

// Selector picks columns: a single label, a list of labels or every column.
type Selector struct {
	labels []Label
	all    bool
}

func One(l Label) Selector {
	return Selector{labels: []Label{l}}
}

func Many(labels ...Label) Selector {
	return Selector{labels: append([]Label(nil), labels...)}
}

func All() Selector {
	return Selector{all: true}
}

func (s Selector) IsAll() bool {
	return s.all
}

// Resolve returns the selected labels in selector order, or every label of
// `known` when the selector is a wildcard. Labels are matched by key, so the
// returned values are the table's own labels.
func (s Selector) Resolve(known []Label) ([]Label, error) {

	if s.all {
		return append([]Label(nil), known...), nil
	}

	byKey := make(map[string]Label, len(known))
	for _, l := range known {
		byKey[LabelKey(l)] = l
	}

	result := make([]Label, 0, len(s.labels))
	for _, l := range s.labels {
		native, ok := byKey[LabelKey(l)]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownLabel, l)
		}
		result = append(result, native)
	}

	return result, nil
}
