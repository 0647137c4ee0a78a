package symbolindex

// SymbolKind tags what sort of program entity a symbol names.
type SymbolKind string

const (
	KindClass    SymbolKind = "class"
	KindMethod   SymbolKind = "method"
	KindProperty SymbolKind = "property"
	KindConstant SymbolKind = "constant"
)

// Symbol is one named program entity recorded by the index.
type Symbol struct {
	Kind SymbolKind `json:"kind"`
}

// Occurrence is a single location where a symbol is defined or referenced.
// Range is [startLine, startCol, endLine, endCol], 0-indexed per the
// producing tool's convention. SymbolRoles is an opaque bitmask decoded
// through a RoleSet.
type Occurrence struct {
	Symbol      string `json:"symbol"`
	File        string `json:"_file"`
	Range       [4]int `json:"range"`
	SymbolRoles int    `json:"symbolRoles"`
}

// StartLine returns the occurrence's 1-indexed start line.
func (o Occurrence) StartLine() int { return o.Range[0] + 1 }

// Document is the on-disk shape of the symbol/occurrence artifact.
type Document struct {
	Symbols     map[string]Symbol `json:"symbols"`
	Occurrences []Occurrence      `json:"occurrences"`
}
