package query

import (
	"strings"

	"graphcheck/internal/callgraph"
)

type callPred func(*callgraph.Call) bool

// CallQuery is a chainable, read-only filter over a store's calls.
// Every filter returns a new query; predicates combine with logical AND.
// An empty result set is a legitimate outcome, never an error.
type CallQuery struct {
	store *callgraph.Store
	preds []callPred
}

// Calls starts a query over every call in the store.
func Calls(store *callgraph.Store) *CallQuery {
	return &CallQuery{store: store}
}

func (q *CallQuery) with(p callPred) *CallQuery {
	preds := make([]callPred, len(q.preds), len(q.preds)+1)
	copy(preds, q.preds)
	return &CallQuery{store: q.store, preds: append(preds, p)}
}

// Kind keeps calls with exactly the given kind.
func (q *CallQuery) Kind(kind callgraph.CallKind) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return c.Kind == kind })
}

// KindType keeps calls with exactly the given coarse grouping.
func (q *CallQuery) KindType(kt callgraph.KindType) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return c.KindType == kt })
}

// CallerContains keeps calls whose enclosing-method symbol contains the
// substring. Matching is case-sensitive.
func (q *CallQuery) CallerContains(substr string) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return strings.Contains(c.Caller, substr) })
}

// Caller keeps calls whose enclosing-method symbol equals the given one.
func (q *CallQuery) Caller(symbol string) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return c.Caller == symbol })
}

// CalleeContains keeps calls whose invoked-target symbol contains the
// substring. Matching is case-sensitive.
func (q *CallQuery) CalleeContains(substr string) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return strings.Contains(c.Callee, substr) })
}

// CalleeMatches keeps calls whose callee matches a glob pattern where "*"
// matches any run of characters.
func (q *CallQuery) CalleeMatches(pattern string) *CallQuery {
	return q.with(func(c *callgraph.Call) bool { return globMatch(pattern, c.Callee) })
}

func (q *CallQuery) matches(c *callgraph.Call) bool {
	for _, p := range q.preds {
		if !p(c) {
			return false
		}
	}
	return true
}

// All returns every matching call in document order.
func (q *CallQuery) All() []callgraph.Call {
	var out []callgraph.Call
	calls := q.store.Calls()
	for i := range calls {
		if q.matches(&calls[i]) {
			out = append(out, calls[i])
		}
	}
	return out
}

// First returns the first matching call in document order.
func (q *CallQuery) First() (*callgraph.Call, bool) {
	calls := q.store.Calls()
	for i := range calls {
		if q.matches(&calls[i]) {
			return q.store.Call(calls[i].ID), true
		}
	}
	return nil, false
}

// Count returns the number of matching calls.
func (q *CallQuery) Count() int {
	n := 0
	calls := q.store.Calls()
	for i := range calls {
		if q.matches(&calls[i]) {
			n++
		}
	}
	return n
}
