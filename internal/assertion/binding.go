package assertion

import (
	"fmt"
	"strings"

	"graphcheck/internal/callgraph"
	"graphcheck/internal/query"
)

// ArgumentBinding verifies what a single call argument resolves to: a
// named local, a named parameter, or the result of a call of a given
// kind. Scope, call and position are accumulated fluently; Verify runs
// the check and fails fast with a descriptive violation.
type ArgumentBinding struct {
	store    *callgraph.Store
	scope    string
	callName string
	position int

	wantKind callgraph.ValueKind
	wantName string
	wantExpr string
}

// NewArgumentBinding starts an assertion against the store.
func NewArgumentBinding(store *callgraph.Store) *ArgumentBinding {
	return &ArgumentBinding{store: store, position: -1}
}

// InMethod restricts the assertion to calls made from class::method.
func (a *ArgumentBinding) InMethod(className, methodName string) *ArgumentBinding {
	a.scope = className + "::" + methodName
	return a
}

// AtCall selects the first in-scope call whose callee contains the
// substring.
func (a *ArgumentBinding) AtCall(nameSubstring string) *ArgumentBinding {
	a.callName = nameSubstring
	return a
}

// Position selects the zero-based argument slot under inspection.
func (a *ArgumentBinding) Position(n int) *ArgumentBinding {
	a.position = n
	return a
}

// PointsToLocal expects the argument to resolve to a local variable with
// the given name.
func (a *ArgumentBinding) PointsToLocal(name string) *ArgumentBinding {
	a.wantKind = callgraph.ValueLocal
	a.wantName = name
	return a
}

// PointsToParameter expects the argument to resolve to a parameter with
// the given name.
func (a *ArgumentBinding) PointsToParameter(name string) *ArgumentBinding {
	a.wantKind = callgraph.ValueParameter
	a.wantName = name
	return a
}

// PointsToResultOf expects the argument to resolve to a value of the
// given kind whose expression contains the accessor-name substring.
func (a *ArgumentBinding) PointsToResultOf(kind callgraph.ValueKind, accessorSubstring string) *ArgumentBinding {
	a.wantKind = kind
	a.wantExpr = accessorSubstring
	return a
}

// Verify resolves the scoped call, its argument and the bound value,
// then checks the value against the configured predicate.
func (a *ArgumentBinding) Verify() error {
	if a.wantKind == "" {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			Position: a.position,
			Message:  "no terminal predicate configured",
		}
	}

	call, ok := query.Calls(a.store).
		Caller(a.scope).
		CalleeContains(a.callName).
		First()
	if !ok {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			Position: a.position,
			Message:  fmt.Sprintf("no call matching %q", a.callName),
		}
	}

	arg := call.Argument(a.position)
	if arg == nil {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Message:  "no argument at position",
		}
	}
	if arg.ValueID == "" {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Actual:   fmt.Sprintf("expression %q", arg.ValueExpr),
			Expected: "a bound value",
			Message:  "argument carries only a textual expression",
		}
	}

	v := a.store.Value(arg.ValueID)
	if v == nil {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Expected: "existing value",
			Actual:   arg.ValueID,
			Message:  "argument valueId does not resolve",
		}
	}

	if v.Kind != a.wantKind {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Expected: string(a.wantKind),
			Actual:   string(v.Kind),
			Message:  "resolved value has the wrong kind",
		}
	}
	if a.wantName != "" && v.Name != a.wantName {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Expected: a.wantName,
			Actual:   v.Name,
			Message:  "resolved value has the wrong name",
		}
	}
	if a.wantExpr != "" && !strings.Contains(v.Expr, a.wantExpr) {
		return &Violation{
			Check:    "argument_binding",
			Scope:    a.scope,
			CallID:   call.ID,
			Position: a.position,
			Expected: fmt.Sprintf("expression containing %q", a.wantExpr),
			Actual:   v.Expr,
			Message:  "resolved value has the wrong expression",
		}
	}
	return nil
}
