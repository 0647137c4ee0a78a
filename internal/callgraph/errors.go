package callgraph

import "fmt"

// LoadError reports a call-graph artifact that could not be read at all.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load call graph %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports content that was readable but not a well-formed
// call-graph document.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse call graph %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse call graph %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
