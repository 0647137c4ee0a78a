package symbolindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrUnavailable is returned when the optional symbol index is queried
// before (or without) being loaded.
var ErrUnavailable = errors.New("symbol index not loaded")

// LoadError reports a symbol-index artifact that could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load symbol index %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports content that was readable but not a well-formed
// symbol-index document.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse symbol index %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse symbol index %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store holds one loaded symbol/occurrence document, indexed by symbol
// name. Read-only after load.
type Store struct {
	symbols             map[string]Symbol
	occurrences         []Occurrence
	occurrencesBySymbol map[string][]int
	roles               RoleSet
}

// Load reads and indexes a symbol-index document from path.
func Load(path string, roles RoleSet) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid JSON", Err: err}
	}

	for i, occ := range doc.Occurrences {
		if occ.Symbol == "" {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("occurrence at index %d has no symbol", i)}
		}
	}

	if roles == nil {
		roles = DefaultRoles()
	}

	s := &Store{
		symbols:             doc.Symbols,
		occurrences:         doc.Occurrences,
		occurrencesBySymbol: make(map[string][]int),
		roles:               roles,
	}
	if s.symbols == nil {
		s.symbols = map[string]Symbol{}
	}
	for i, occ := range s.occurrences {
		s.occurrencesBySymbol[occ.Symbol] = append(s.occurrencesBySymbol[occ.Symbol], i)
	}
	return s, nil
}

// Symbols returns the symbol table. Callers must treat it as read-only.
func (s *Store) Symbols() map[string]Symbol { return s.symbols }

// Symbol looks up one symbol by exact name.
func (s *Store) Symbol(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Occurrences returns all occurrences in document order.
func (s *Store) Occurrences() []Occurrence { return s.occurrences }

// OccurrencesOf returns the occurrences of one symbol in document order.
func (s *Store) OccurrencesOf(symbol string) []Occurrence {
	idx := s.occurrencesBySymbol[symbol]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Occurrence, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.occurrences[i])
	}
	return out
}

// Roles returns the role-bit mapping the store decodes masks with.
func (s *Store) Roles() RoleSet { return s.roles }

// RoleNames decodes an occurrence's role bitmask into symbolic names.
func (s *Store) RoleNames(occ Occurrence) []string {
	return s.roles.RoleNames(occ.SymbolRoles)
}

// Index is the explicit optional wrapper around a Store. The symbol-index
// artifact may legitimately be absent; callers check Available or accept
// ErrUnavailable from Require instead of testing nil pointers ad hoc.
type Index struct {
	store *Store
}

// Attach wraps an already-loaded store.
func Attach(store *Store) *Index {
	return &Index{store: store}
}

// Unavailable returns an index with no document behind it.
func Unavailable() *Index {
	return &Index{}
}

// LoadOptional loads the document at path if it exists. A missing file is
// not an error, only an unavailable index; any other failure is reported.
func LoadOptional(path string, roles RoleSet) (*Index, error) {
	if path == "" {
		return Unavailable(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Unavailable(), nil
	}
	store, err := Load(path, roles)
	if err != nil {
		return nil, err
	}
	return Attach(store), nil
}

// Available reports whether a document is loaded.
func (ix *Index) Available() bool { return ix != nil && ix.store != nil }

// Require returns the underlying store or ErrUnavailable.
func (ix *Index) Require() (*Store, error) {
	if !ix.Available() {
		return nil, ErrUnavailable
	}
	return ix.store, nil
}
