package query

import (
	"strings"

	"graphcheck/internal/symbolindex"
)

type occurrencePred func(symbolindex.Occurrence) bool

// OccurrenceQuery is a chainable, read-only filter over the index's
// occurrence list.
type OccurrenceQuery struct {
	store *symbolindex.Store
	preds []occurrencePred
}

// Occurrences starts a query over every occurrence in the index.
// Querying an unavailable index yields symbolindex.ErrUnavailable.
func Occurrences(ix *symbolindex.Index) (*OccurrenceQuery, error) {
	store, err := ix.Require()
	if err != nil {
		return nil, err
	}
	return &OccurrenceQuery{store: store}, nil
}

func (q *OccurrenceQuery) with(p occurrencePred) *OccurrenceQuery {
	preds := make([]occurrencePred, len(q.preds), len(q.preds)+1)
	copy(preds, q.preds)
	return &OccurrenceQuery{store: q.store, preds: append(preds, p)}
}

// ForSymbol keeps occurrences of exactly the named symbol.
func (q *OccurrenceQuery) ForSymbol(symbol string) *OccurrenceQuery {
	return q.with(func(o symbolindex.Occurrence) bool { return o.Symbol == symbol })
}

// SymbolContains keeps occurrences whose symbol contains the substring.
func (q *OccurrenceQuery) SymbolContains(substr string) *OccurrenceQuery {
	return q.with(func(o symbolindex.Occurrence) bool { return strings.Contains(o.Symbol, substr) })
}

// SymbolMatches keeps occurrences whose symbol matches a glob pattern.
func (q *OccurrenceQuery) SymbolMatches(pattern string) *OccurrenceQuery {
	return q.with(func(o symbolindex.Occurrence) bool { return globMatch(pattern, o.Symbol) })
}

// IsDefinition keeps occurrences whose Definition role bit is set. The
// Definition and Reference bits are independent; an occurrence may carry
// both.
func (q *OccurrenceQuery) IsDefinition() *OccurrenceQuery {
	roles := q.store.Roles()
	return q.with(func(o symbolindex.Occurrence) bool {
		return roles.Has(o.SymbolRoles, symbolindex.RoleDefinition)
	})
}

// IsReference keeps occurrences whose Reference role bit is set.
func (q *OccurrenceQuery) IsReference() *OccurrenceQuery {
	roles := q.store.Roles()
	return q.with(func(o symbolindex.Occurrence) bool {
		return roles.Has(o.SymbolRoles, symbolindex.RoleReference)
	})
}

// InFile keeps occurrences whose file path contains the substring.
func (q *OccurrenceQuery) InFile(substr string) *OccurrenceQuery {
	return q.with(func(o symbolindex.Occurrence) bool { return strings.Contains(o.File, substr) })
}

// BetweenLines keeps occurrences whose 1-indexed start line lies in
// [low, high]. Stored ranges are 0-indexed; the conversion happens here.
func (q *OccurrenceQuery) BetweenLines(low, high int) *OccurrenceQuery {
	return q.with(func(o symbolindex.Occurrence) bool {
		line := o.StartLine()
		return line >= low && line <= high
	})
}

func (q *OccurrenceQuery) matches(o symbolindex.Occurrence) bool {
	for _, p := range q.preds {
		if !p(o) {
			return false
		}
	}
	return true
}

// All returns every matching occurrence in document order.
func (q *OccurrenceQuery) All() []symbolindex.Occurrence {
	var out []symbolindex.Occurrence
	for _, o := range q.store.Occurrences() {
		if q.matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// First returns the first matching occurrence in document order.
func (q *OccurrenceQuery) First() (symbolindex.Occurrence, bool) {
	for _, o := range q.store.Occurrences() {
		if q.matches(o) {
			return o, true
		}
	}
	return symbolindex.Occurrence{}, false
}

// Count returns the number of matching occurrences.
func (q *OccurrenceQuery) Count() int {
	n := 0
	for _, o := range q.store.Occurrences() {
		if q.matches(o) {
			n++
		}
	}
	return n
}
