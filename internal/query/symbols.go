package query

import (
	"sort"
	"strings"

	"graphcheck/internal/symbolindex"
)

// NamedSymbol pairs a symbol with its name, since the index stores
// symbols keyed by name.
type NamedSymbol struct {
	Name   string
	Symbol symbolindex.Symbol
}

type symbolPred func(NamedSymbol) bool

// SymbolQuery is a chainable, read-only filter over the symbol table.
type SymbolQuery struct {
	store *symbolindex.Store
	preds []symbolPred
}

// Symbols starts a query over every symbol in the index. Querying an
// unavailable index yields symbolindex.ErrUnavailable.
func Symbols(ix *symbolindex.Index) (*SymbolQuery, error) {
	store, err := ix.Require()
	if err != nil {
		return nil, err
	}
	return &SymbolQuery{store: store}, nil
}

func (q *SymbolQuery) with(p symbolPred) *SymbolQuery {
	preds := make([]symbolPred, len(q.preds), len(q.preds)+1)
	copy(preds, q.preds)
	return &SymbolQuery{store: q.store, preds: append(preds, p)}
}

// IsClass keeps symbols tagged as classes.
func (q *SymbolQuery) IsClass() *SymbolQuery {
	return q.KindIs(symbolindex.KindClass)
}

// KindIs keeps symbols with exactly the given kind tag.
func (q *SymbolQuery) KindIs(kind symbolindex.SymbolKind) *SymbolQuery {
	return q.with(func(s NamedSymbol) bool { return s.Symbol.Kind == kind })
}

// NameContains keeps symbols whose name contains the substring.
func (q *SymbolQuery) NameContains(substr string) *SymbolQuery {
	return q.with(func(s NamedSymbol) bool { return strings.Contains(s.Name, substr) })
}

// NameMatches keeps symbols whose name matches a glob pattern.
func (q *SymbolQuery) NameMatches(pattern string) *SymbolQuery {
	return q.with(func(s NamedSymbol) bool { return globMatch(pattern, s.Name) })
}

func (q *SymbolQuery) matches(s NamedSymbol) bool {
	for _, p := range q.preds {
		if !p(s) {
			return false
		}
	}
	return true
}

// All returns every matching symbol, sorted by name. The symbol table is
// a map, so name order is the only deterministic one.
func (q *SymbolQuery) All() []NamedSymbol {
	var out []NamedSymbol
	for name, sym := range q.store.Symbols() {
		ns := NamedSymbol{Name: name, Symbol: sym}
		if q.matches(ns) {
			out = append(out, ns)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// First returns the name-ordered first matching symbol.
func (q *SymbolQuery) First() (NamedSymbol, bool) {
	all := q.All()
	if len(all) == 0 {
		return NamedSymbol{}, false
	}
	return all[0], true
}

// Count returns the number of matching symbols.
func (q *SymbolQuery) Count() int {
	n := 0
	for name, sym := range q.store.Symbols() {
		if q.matches(NamedSymbol{Name: name, Symbol: sym}) {
			n++
		}
	}
	return n
}
