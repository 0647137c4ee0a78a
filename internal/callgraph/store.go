package callgraph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store holds one loaded call/value-graph document and its id indexes.
// It is loaded once and read-only afterwards, so sharing it across test
// bodies needs no locking.
type Store struct {
	version    string
	values     []Value
	calls      []Call
	valuesByID map[string]*Value
	callsByID  map[string]*Call
}

// Load reads and indexes a call-graph document from path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid JSON", Err: err}
	}

	return FromDocument(path, &doc)
}

// FromDocument validates and indexes an already-decoded document.
func FromDocument(path string, doc *Document) (*Store, error) {
	s := &Store{
		version:    doc.Version,
		values:     doc.Values,
		calls:      doc.Calls,
		valuesByID: make(map[string]*Value, len(doc.Values)),
		callsByID:  make(map[string]*Call, len(doc.Calls)),
	}

	for i := range s.values {
		v := &s.values[i]
		if v.ID == "" {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("value at index %d has no id", i)}
		}
		if !KnownValueKind(v.Kind) {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("value %s has unknown kind %q", v.ID, v.Kind)}
		}
		if _, dup := s.valuesByID[v.ID]; dup {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("duplicate value id %s", v.ID)}
		}
		s.valuesByID[v.ID] = v
	}

	for i := range s.calls {
		c := &s.calls[i]
		if c.ID == "" {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("call at index %d has no id", i)}
		}
		if !KnownCallKind(c.Kind) {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("call %s has unknown kind %q", c.ID, c.Kind)}
		}
		if _, dup := s.callsByID[c.ID]; dup {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("duplicate call id %s", c.ID)}
		}
		seen := make(map[int]bool, len(c.Arguments))
		for _, arg := range c.Arguments {
			if seen[arg.Position] {
				return nil, &ParseError{Path: path, Reason: fmt.Sprintf("call %s repeats argument position %d", c.ID, arg.Position)}
			}
			seen[arg.Position] = true
			// Exactly one of valueId / valueExpr binds the slot.
			if (arg.ValueID == "") == (arg.ValueExpr == "") {
				return nil, &ParseError{Path: path, Reason: fmt.Sprintf("call %s argument %d must carry exactly one of valueId or valueExpr", c.ID, arg.Position)}
			}
		}
		s.callsByID[c.ID] = c
	}

	return s, nil
}

// Version returns the document's informational version string.
func (s *Store) Version() string { return s.version }

// ValueCount returns the total number of values in the document.
func (s *Store) ValueCount() int { return len(s.values) }

// CallCount returns the total number of calls in the document.
func (s *Store) CallCount() int { return len(s.calls) }

// Value returns the value with the given id, or nil.
func (s *Store) Value(id string) *Value { return s.valuesByID[id] }

// Call returns the call with the given id, or nil.
func (s *Store) Call(id string) *Call { return s.callsByID[id] }

// HasValue reports whether a value with the given id exists.
func (s *Store) HasValue(id string) bool {
	_, ok := s.valuesByID[id]
	return ok
}

// HasCall reports whether a call with the given id exists.
func (s *Store) HasCall(id string) bool {
	_, ok := s.callsByID[id]
	return ok
}

// Values returns all values in document order.
func (s *Store) Values() []Value { return s.values }

// Calls returns all calls in document order.
func (s *Store) Calls() []Call { return s.calls }

// ValuesByID returns the id index. Callers must treat it as read-only.
func (s *Store) ValuesByID() map[string]*Value { return s.valuesByID }

// CallsByID returns the id index. Callers must treat it as read-only.
func (s *Store) CallsByID() map[string]*Call { return s.callsByID }

// Argument returns the argument of call c at the given position, or nil.
func (c *Call) Argument(position int) *Argument {
	for i := range c.Arguments {
		if c.Arguments[i].Position == position {
			return &c.Arguments[i]
		}
	}
	return nil
}
