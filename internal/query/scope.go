package query

import "graphcheck/internal/callgraph"

// MethodScope narrows queries to one enclosing method, identified as
// "Class::method". It adds no predicate kinds of its own; the queries it
// hands out are the ordinary chainable ones.
type MethodScope struct {
	store  *callgraph.Store
	symbol string
}

// NewMethodScope scopes the store to the method class::method.
func NewMethodScope(store *callgraph.Store, className, methodName string) *MethodScope {
	return &MethodScope{store: store, symbol: className + "::" + methodName}
}

// Symbol returns the fully qualified "Class::method" scope symbol.
func (m *MethodScope) Symbol() string { return m.symbol }

// Calls returns a query over calls whose caller is this method.
func (m *MethodScope) Calls() *CallQuery {
	return Calls(m.store).Caller(m.symbol)
}

// Values returns a query over values declared in this method.
func (m *MethodScope) Values() *ValueQuery {
	return Values(m.store).InScope(m.symbol)
}
