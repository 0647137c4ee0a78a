package symbolindex

import "sort"

// Role names as published by the producing tool's schema.
const (
	RoleDefinition        = "Definition"
	RoleReference         = "Reference"
	RoleWriteAccess       = "WriteAccess"
	RoleReadAccess        = "ReadAccess"
	RoleGenerated         = "Generated"
	RoleTest              = "Test"
	RoleForwardDefinition = "ForwardDefinition"
)

// RoleSet maps role names to their bit values. The mapping is consumed
// from the producing tool's documented schema; it is configuration, not
// something this package invents.
type RoleSet map[string]int

// DefaultRoles is the bit-flag convention of the indexing tool.
func DefaultRoles() RoleSet {
	return RoleSet{
		RoleDefinition:        1,
		RoleReference:         2,
		RoleWriteAccess:       4,
		RoleReadAccess:        8,
		RoleGenerated:         16,
		RoleTest:              32,
		RoleForwardDefinition: 64,
	}
}

// Has reports whether the named role's bit is set in mask. Unknown role
// names never match.
func (r RoleSet) Has(mask int, role string) bool {
	bit, ok := r[role]
	if !ok {
		return false
	}
	return mask&bit != 0
}

// RoleNames decodes a bitmask into the sorted list of set role names.
func (r RoleSet) RoleNames(mask int) []string {
	var names []string
	for name, bit := range r {
		if mask&bit != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
