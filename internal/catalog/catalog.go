// Package catalog is the declarative registry of validation cases.
// Metadata lives in one build-time table instead of being discovered by
// runtime introspection.
package catalog

import "sort"

// CaseMeta describes one validation case for reporting and docs.
type CaseMeta struct {
	Name         string
	Description  string
	Category     string
	Experimental bool
}

// Categories.
const (
	CategoryIntegrity = "integrity"
	CategoryBinding   = "binding"
	CategoryChain     = "chain"
	CategoryReference = "reference"
	CategoryIndex     = "symbol_index"
)

// Cases maps case identifiers to their metadata.
var Cases = map[string]CaseMeta{
	"noParameterDuplicates": {
		Name:        "No parameter duplicates",
		Description: "No two parameter values share a name within one method scope",
		Category:    CategoryIntegrity,
	},
	"noLocalDuplicatesPerLine": {
		Name:        "No local duplicates per line",
		Description: "No two local values share a name and originating line within one scope",
		Category:    CategoryIntegrity,
	},
	"allReceiverValueIdsExist": {
		Name:        "Receiver references resolve",
		Description: "Every non-null receiverValueId resolves to an existing value",
		Category:    CategoryIntegrity,
	},
	"allArgumentValueIdsExist": {
		Name:        "Argument references resolve",
		Description: "Every non-null argument valueId resolves to an existing value",
		Category:    CategoryIntegrity,
	},
	"allSourceCallIdsExist": {
		Name:        "Source-call references resolve",
		Description: "Every non-null sourceCallId resolves to an existing call",
		Category:    CategoryIntegrity,
	},
	"allSourceValueIdsExist": {
		Name:        "Source-value references resolve",
		Description: "Every non-null sourceValueId resolves to an existing value",
		Category:    CategoryIntegrity,
	},
	"everyCallHasResultValue": {
		Name:        "Calls produce results",
		Description: "Every call has a resultValueId resolving to an existing value",
		Category:    CategoryIntegrity,
	},
	"resultValueTypesMatch": {
		Name:         "Result types match",
		Description:  "A call's declared return type equals its result value's type",
		Category:     CategoryIntegrity,
		Experimental: true,
	},
	"argumentBinding": {
		Name:        "Argument binding",
		Description: "A call argument resolves to the expected local, parameter, or accessor result",
		Category:    CategoryBinding,
	},
	"chainIntegrity": {
		Name:        "Chain integrity",
		Description: "Value/call source links form a well-formed alternating chain",
		Category:    CategoryChain,
	},
	"referenceConsistency": {
		Name:        "Reference consistency",
		Description: "A variable has one declaration and all references point at it",
		Category:    CategoryReference,
	},
	"occurrenceRoles": {
		Name:        "Occurrence roles",
		Description: "Occurrence role bitmasks decode into the documented role names",
		Category:    CategoryIndex,
	},
}

// Lookup returns the metadata registered under id.
func Lookup(id string) (CaseMeta, bool) {
	meta, ok := Cases[id]
	return meta, ok
}

// IDs returns every registered case identifier in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(Cases))
	for id := range Cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ByCategory returns the sorted identifiers of one category.
func ByCategory(category string) []string {
	var ids []string
	for id, meta := range Cases {
		if meta.Category == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
