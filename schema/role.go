package schema

import (
	"fmt"
	"strings"
)

// Role tells how a column participates in analysis.
type Role uint8

const (
	Input Role = iota
	Target
	Ignore
)

func (r Role) String() string {
	switch r {
	case Input:
		return "INPUT"
	case Target:
		return "TARGET"
	case Ignore:
		return "IGNORE"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

func (r Role) Valid() bool {
	return r <= Ignore
}

func ParseRole(s string) (Role, error) {

	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INPUT":
		return Input, nil
	case "TARGET":
		return Target, nil
	case "IGNORE":
		return Ignore, nil
	default:
		return 0, fmt.Errorf("%w: role `%s`", ErrInvalidTag, s)
	}
}

func CheckRoles(values []Role) error {
	for _, v := range values {
		if !v.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidTag, v.String())
		}
	}
	return nil
}
