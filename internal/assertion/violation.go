package assertion

import (
	"errors"
	"fmt"
	"strings"
)

// Violation is the error raised by the fast-fail assertions. It carries
// enough context to localize the defect without re-running: the scope,
// the call and position under inspection, and expected vs. actual.
type Violation struct {
	Check    string
	Scope    string
	CallID   string
	EntityID string
	Position int
	Expected string
	Actual   string
	Message  string
}

func (v *Violation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", v.Check, v.Message)
	if v.Scope != "" {
		fmt.Fprintf(&b, " (scope %s", v.Scope)
		if v.CallID != "" {
			fmt.Fprintf(&b, ", call %s", v.CallID)
		}
		if v.Position >= 0 {
			fmt.Fprintf(&b, ", position %d", v.Position)
		}
		b.WriteString(")")
	} else if v.EntityID != "" {
		fmt.Fprintf(&b, " (entity %s)", v.EntityID)
	}
	if v.Expected != "" || v.Actual != "" {
		fmt.Fprintf(&b, ": expected %s, got %s", v.Expected, v.Actual)
	}
	return b.String()
}

// AsViolation unwraps err into a *Violation when possible.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
