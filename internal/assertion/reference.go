package assertion

import (
	"fmt"

	"graphcheck/internal/callgraph"
	"graphcheck/internal/query"
)

// ReferenceConsistency verifies that a variable name has exactly one
// declaration in a scope and that every receiver or argument reference
// to that name within the scope resolves to the declared value id.
type ReferenceConsistency struct {
	store *callgraph.Store
	scope string
	name  string
}

// NewReferenceConsistency starts an assertion against the store.
func NewReferenceConsistency(store *callgraph.Store) *ReferenceConsistency {
	return &ReferenceConsistency{store: store}
}

// InScope restricts the assertion to the method class::method.
func (a *ReferenceConsistency) InScope(className, methodName string) *ReferenceConsistency {
	a.scope = className + "::" + methodName
	return a
}

// Variable names the local or parameter under inspection.
func (a *ReferenceConsistency) Variable(name string) *ReferenceConsistency {
	a.name = name
	return a
}

// Verify fails on the first inconsistency found.
func (a *ReferenceConsistency) Verify() error {
	decls := query.Values(a.store).
		InScope(a.scope).
		Named(a.name).
		All()

	var declared []callgraph.Value
	for _, v := range decls {
		if v.Kind == callgraph.ValueParameter || v.Kind == callgraph.ValueLocal {
			declared = append(declared, v)
		}
	}

	switch len(declared) {
	case 0:
		return &Violation{
			Check:    "reference_consistency",
			Scope:    a.scope,
			Position: -1,
			Message:  fmt.Sprintf("no declaration of %s", a.name),
		}
	case 1:
	default:
		return &Violation{
			Check:    "reference_consistency",
			Scope:    a.scope,
			Position: -1,
			Message:  fmt.Sprintf("%d declarations of %s (first %s, second %s)", len(declared), a.name, declared[0].ID, declared[1].ID),
		}
	}
	declaredID := declared[0].ID

	for _, c := range query.Calls(a.store).Caller(a.scope).All() {
		if c.ReceiverValueID != "" {
			if err := a.checkReference(&c, -1, c.ReceiverValueID, declaredID); err != nil {
				return err
			}
		}
		for _, arg := range c.Arguments {
			if arg.ValueID == "" {
				continue
			}
			if err := a.checkReference(&c, arg.Position, arg.ValueID, declaredID); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkReference flags a reference that names the variable but points at
// a different value id than its declaration.
func (a *ReferenceConsistency) checkReference(c *callgraph.Call, position int, valueID, declaredID string) error {
	v := a.store.Value(valueID)
	if v == nil || v.Name != a.name {
		return nil
	}
	if v.Kind != callgraph.ValueParameter && v.Kind != callgraph.ValueLocal {
		return nil
	}
	if valueID != declaredID {
		return &Violation{
			Check:    "reference_consistency",
			Scope:    a.scope,
			CallID:   c.ID,
			Position: position,
			Expected: declaredID,
			Actual:   valueID,
			Message:  fmt.Sprintf("reference to %s resolves to a different value than its declaration", a.name),
		}
	}
	return nil
}
