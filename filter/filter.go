package filter

import (
	"fmt"
	"strings"

	"github.com/dot5enko/copper/bits"
	"github.com/dot5enko/copper/metadata"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
)

// Criteria selects columns by their tags. Values inside one axis are OR-ed,
// the two axes are AND-ed. An empty axis matches every column.
type Criteria struct {
	Roles []schema.Role
	Types []schema.Type
}

func ByRole(roles ...schema.Role) Criteria {
	return Criteria{Roles: roles}
}

func ByType(types ...schema.Type) Criteria {
	return Criteria{Types: types}
}

func (c Criteria) WithRole(roles ...schema.Role) Criteria {
	c.Roles = append(append([]schema.Role(nil), c.Roles...), roles...)
	return c
}

func (c Criteria) WithType(types ...schema.Type) Criteria {
	c.Types = append(append([]schema.Type(nil), c.Types...), types...)
	return c
}

func (c Criteria) String() string {

	parts := []string{}

	if len(c.Roles) > 0 {
		roles := make([]string, len(c.Roles))
		for i, r := range c.Roles {
			roles[i] = r.String()
		}
		parts = append(parts, "role in ("+strings.Join(roles, " OR ")+")")
	}

	if len(c.Types) > 0 {
		types := make([]string, len(c.Types))
		for i, t := range c.Types {
			types[i] = t.String()
		}
		parts = append(parts, "type in ("+strings.Join(types, " OR ")+")")
	}

	if len(parts) == 0 {
		return "all columns"
	}

	return strings.Join(parts, " AND ")
}

func (c Criteria) Validate() error {
	if err := schema.CheckRoles(c.Roles); err != nil {
		return err
	}
	return schema.CheckTypes(c.Types)
}

// axisMask marks the entries whose tag is any of wanted. No wanted tags
// means no constraint on that axis.
func axisMask[T comparable](entries []metadata.Entry, wanted []T, tagOf func(metadata.Entry) T) bits.Bitset {

	if len(wanted) == 0 {
		return bits.NewFullBitset(len(entries))
	}

	mask := bits.NewBitset(len(entries))

	for _, tag := range wanted {

		tagged := bits.NewBitset(len(entries))
		for i, e := range entries {
			if tagOf(e) == tag {
				tagged.Set(i)
			}
		}

		mask = bits.MergeOR(mask, tagged)
	}

	return mask
}

// Match returns the positions of the matching entries, in order.
func Match(entries []metadata.Entry, c Criteria) ([]int, error) {

	if err := c.Validate(); err != nil {
		return nil, err
	}

	roleMask := axisMask(entries, c.Roles, func(e metadata.Entry) schema.Role { return e.Role })
	typeMask := axisMask(entries, c.Types, func(e metadata.Entry) schema.Type { return e.Type })

	return bits.MergeAND(roleMask, typeMask).ToIndices(), nil
}

// Apply returns a new table with the columns of t whose metadata satisfies c.
// The metadata must correspond to t.
func Apply(t *table.Table, meta *metadata.Table, c Criteria) (*table.Table, error) {

	if err := meta.Check(t); err != nil {
		return nil, fmt.Errorf("unable to filter : %w", err)
	}

	positions, err := Match(meta.Export(), c)
	if err != nil {
		return nil, err
	}

	return t.SelectPositions(positions), nil
}
