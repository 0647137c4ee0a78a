package query

import (
	"strings"

	"graphcheck/internal/callgraph"
)

type valuePred func(*callgraph.Value) bool

// ValueQuery is a chainable, read-only filter over a store's values.
type ValueQuery struct {
	store *callgraph.Store
	preds []valuePred
}

// Values starts a query over every value in the store.
func Values(store *callgraph.Store) *ValueQuery {
	return &ValueQuery{store: store}
}

func (q *ValueQuery) with(p valuePred) *ValueQuery {
	preds := make([]valuePred, len(q.preds), len(q.preds)+1)
	copy(preds, q.preds)
	return &ValueQuery{store: q.store, preds: append(preds, p)}
}

// Kind keeps values with exactly the given kind.
func (q *ValueQuery) Kind(kind callgraph.ValueKind) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return v.Kind == kind })
}

// KindType keeps values with exactly the given coarse grouping.
func (q *ValueQuery) KindType(kt callgraph.KindType) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return v.KindType == kt })
}

// Named keeps values declared under exactly the given variable name.
func (q *ValueQuery) Named(name string) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return v.Name == name })
}

// InScope keeps values whose enclosing-method symbol equals the given one.
func (q *ValueQuery) InScope(scope string) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return v.Scope == scope })
}

// TypeIs keeps values with exactly the given declared or inferred type.
func (q *ValueQuery) TypeIs(typeName string) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return v.Type == typeName })
}

// ExprContains keeps values whose source expression contains the substring.
func (q *ValueQuery) ExprContains(substr string) *ValueQuery {
	return q.with(func(v *callgraph.Value) bool { return strings.Contains(v.Expr, substr) })
}

func (q *ValueQuery) matches(v *callgraph.Value) bool {
	for _, p := range q.preds {
		if !p(v) {
			return false
		}
	}
	return true
}

// All returns every matching value in document order.
func (q *ValueQuery) All() []callgraph.Value {
	var out []callgraph.Value
	values := q.store.Values()
	for i := range values {
		if q.matches(&values[i]) {
			out = append(out, values[i])
		}
	}
	return out
}

// First returns the first matching value in document order.
func (q *ValueQuery) First() (*callgraph.Value, bool) {
	values := q.store.Values()
	for i := range values {
		if q.matches(&values[i]) {
			return q.store.Value(values[i].ID), true
		}
	}
	return nil, false
}

// Count returns the number of matching values.
func (q *ValueQuery) Count() int {
	n := 0
	values := q.store.Values()
	for i := range values {
		if q.matches(&values[i]) {
			n++
		}
	}
	return n
}
